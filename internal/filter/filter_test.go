package filter

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bimmerbailey/envform/internal/dotenv"
)

func testEnv(pairs ...string) *dotenv.Map {
	env := dotenv.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		env.Set(pairs[i], pairs[i+1])
	}
	return env
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "no filters passes through",
			cfg:  Config{},
			want: []string{"APP_NAME", "APP_PORT", "DB_HOST", "DB_PASSWORD"},
		},
		{
			name: "prefix only",
			cfg:  Config{Prefix: "DB_"},
			want: []string{"DB_HOST", "DB_PASSWORD"},
		},
		{
			name: "prefix is case-sensitive",
			cfg:  Config{Prefix: "db_"},
			want: []string{},
		},
		{
			name: "whitelist only",
			cfg:  Config{Whitelist: []string{"APP_PORT", "DB_HOST"}},
			want: []string{"APP_PORT", "DB_HOST"},
		},
		{
			name: "whitelist dominates prefix",
			cfg:  Config{Prefix: "APP_", Whitelist: []string{"DB_HOST"}},
			want: []string{"DB_HOST"},
		},
		{
			name: "exclude only",
			cfg:  Config{Exclude: []string{"DB_PASSWORD"}},
			want: []string{"APP_NAME", "APP_PORT", "DB_HOST"},
		},
		{
			name: "exclude applies after whitelist",
			cfg:  Config{Whitelist: []string{"APP_NAME", "APP_PORT"}, Exclude: []string{"APP_PORT"}},
			want: []string{"APP_NAME"},
		},
		{
			name: "exclude applies after prefix",
			cfg:  Config{Prefix: "DB_", Exclude: []string{"DB_PASSWORD"}},
			want: []string{"DB_HOST"},
		},
		{
			name: "whitelisted key unknown to env",
			cfg:  Config{Whitelist: []string{"MISSING"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(
				"APP_NAME", "demo",
				"APP_PORT", "8080",
				"DB_HOST", "localhost",
				"DB_PASSWORD", "hunter2",
			)

			got := dotenv.Keys(Apply(env, tt.cfg))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() keys = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	env := testEnv("A", "1", "B", "2")

	Apply(env, Config{Whitelist: []string{"A"}, Exclude: []string{"B"}})

	if env.Len() != 2 {
		t.Errorf("input mapping mutated: %d entries left, want 2", env.Len())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty config", cfg: Config{}, wantErr: false},
		{name: "nil whitelist absent", cfg: Config{Whitelist: nil}, wantErr: false},
		{name: "populated whitelist", cfg: Config{Whitelist: []string{"A"}}, wantErr: false},
		{name: "explicit empty whitelist", cfg: Config{Whitelist: []string{}}, wantErr: true},
		{name: "explicit empty exclude", cfg: Config{Exclude: []string{}}, wantErr: true},
		{name: "prefix alone", cfg: Config{Prefix: "APP_"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	err := Validate(Config{Whitelist: []string{}, Exclude: []string{}})
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error type = %T, want *ValidationError", err)
	}
	if len(vErr.Problems) != 2 {
		t.Errorf("got %d problems, want 2: %v", len(vErr.Problems), vErr.Problems)
	}
	if !strings.Contains(err.Error(), "whitelist") || !strings.Contains(err.Error(), "exclude") {
		t.Errorf("error message should name both problems, got %q", err.Error())
	}
}

func TestWarnings(t *testing.T) {
	if w := Warnings(Config{Whitelist: []string{"A"}, Prefix: "APP_"}); len(w) != 1 {
		t.Errorf("whitelist+prefix should produce one warning, got %v", w)
	}
	if w := Warnings(Config{Whitelist: []string{"A"}}); len(w) != 0 {
		t.Errorf("whitelist alone should produce no warnings, got %v", w)
	}
	if w := Warnings(Config{Prefix: "APP_"}); len(w) != 0 {
		t.Errorf("prefix alone should produce no warnings, got %v", w)
	}
}
