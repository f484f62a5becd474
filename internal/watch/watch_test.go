package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRun_InitialAndChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("A=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := make(chan struct{}, 16)
	w := New(Options{
		FilePath: path,
		OnChange: func() error {
			calls <- struct{}{}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Run fires once on startup.
	waitForCall(t, calls, "initial conversion")

	// A write to the file triggers another run.
	if err := os.WriteFile(path, []byte("A=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForCall(t, calls, "conversion after write")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestRun_MissingFile(t *testing.T) {
	w := New(Options{
		FilePath: filepath.Join(t.TempDir(), "missing.env"),
		OnChange: func() error { return nil },
	})

	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() on missing file expected error, got nil")
	}
}

func waitForCall(t *testing.T, calls <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
