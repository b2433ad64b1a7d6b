package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.HTTPAddr = "" }},
		{"unknown variant", func(c *Config) { c.DefaultVariant = "blitz" }},
		{"short room code", func(c *Config) { c.RoomCodeLength = 2 }},
		{"long room code", func(c *Config) { c.RoomCodeLength = 40 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.mutate(&cfg)
			err := cfg.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Fatalf("want *InvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DEFAULT_VARIANT", "dice")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("ROOM_CODE_LENGTH", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("W_CAPTURE", "7")
	t.Setenv("W_CHECK", "not-a-number")

	cfg := DefaultConfig
	applyEnv(&cfg)

	if cfg.HTTPAddr != ":9999" || cfg.DefaultVariant != "dice" || cfg.RNGSeed != 42 || cfg.RoomCodeLength != 8 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Level() != zapcore.DebugLevel {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.Weights.WCapture != 7 {
		t.Errorf("capture weight = %d, want 7", cfg.Weights.WCapture)
	}
	if cfg.Weights.WCheck != DefaultConfig.Weights.WCheck {
		t.Errorf("unparsable env should keep default, got %d", cfg.Weights.WCheck)
	}
}

func TestReadCfgFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides fields present in file", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		if err := os.WriteFile(path, []byte(`{"default_variant":"coin_toss","weights":{"mate":5}}`), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := DefaultConfig
		if err := readCfgFile(path, &cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.DefaultVariant != "coin_toss" || cfg.Weights.WMate != 5 {
			t.Fatalf("file not applied: %+v", cfg)
		}
		if cfg.HTTPAddr != DefaultConfig.HTTPAddr {
			t.Errorf("missing field should keep default, got %q", cfg.HTTPAddr)
		}
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		cfg := DefaultConfig
		if err := readCfgFile(filepath.Join(dir, "nope.json"), &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"http_addr":`), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := DefaultConfig
		var invalid *InvalidConfig
		if err := readCfgFile(path, &cfg); !errors.As(err, &invalid) {
			t.Fatalf("want *InvalidConfig, got %v", err)
		}
	})

	t.Run("round trip through saveCfgFile", func(t *testing.T) {
		path := filepath.Join(dir, "saved.json")
		want := DefaultConfig
		want.AllowedOrigins = []string{"http://x.test"}
		if err := saveCfgFile(path, &want, 0o600); err != nil {
			t.Fatal(err)
		}
		var got Config
		if err := readCfgFile(path, &got); err != nil {
			t.Fatal(err)
		}
		if got.Weights != want.Weights || got.AllowedOrigins[0] != "http://x.test" {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestGetReturnsCopy(t *testing.T) {
	a := Get()
	a.HTTPAddr = "mutated"
	if Get().HTTPAddr == "mutated" {
		t.Fatal("Get must not expose shared state")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	want := DefaultConfig
	want.DefaultVariant = "dice"
	want.RNGSeed = 42
	if err := want.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DefaultVariant != "dice" || got.RNGSeed != 42 {
		t.Fatalf("loaded %+v", got)
	}
}
