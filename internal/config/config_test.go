package config

import (
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.File != DefaultFile {
		t.Errorf("File = %q, want %q", cfg.File, DefaultFile)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, DefaultFormat)
	}
	if len(cfg.Redact) != 0 {
		t.Errorf("Redact = %v, want empty", cfg.Redact)
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("file", "production.env")
	v.Set("format", "yaml")
	v.Set("redact", []string{"password", "token"})
	v.Set("verbose", true)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.File != "production.env" {
		t.Errorf("File = %q, want production.env", cfg.File)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Format)
	}
	if !reflect.DeepEqual(cfg.Redact, []string{"password", "token"}) {
		t.Errorf("Redact = %v, want [password token]", cfg.Redact)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}
