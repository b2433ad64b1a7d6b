package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"go.uber.org/zap/zapcore"
)

var cfgFile = "chance-chess/config.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

// Weights tune the bot's move scorer.
type Weights struct {
	WMate    int `json:"mate"`
	WCapture int `json:"capture"`
	WCheck   int `json:"check"`
	WPromote int `json:"promote"`
	WCenter  int `json:"center"`
	WHanging int `json:"hanging"`
}

type Config struct {
	HTTPAddr       string   `json:"http_addr"`
	DefaultVariant string   `json:"default_variant"`
	RNGSeed        int64    `json:"rng_seed"` // 0 seeds from the clock
	RoomCodeLength int      `json:"room_code_length"`
	LogLevel       string   `json:"log_level"`
	AllowedOrigins []string `json:"allowed_origins"`
	Weights        Weights  `json:"weights"`
}

var DefaultConfig = Config{
	HTTPAddr:       ":8080",
	DefaultVariant: "classic",
	RoomCodeLength: 6,
	LogLevel:       "info",
	Weights: Weights{
		WMate:    10000,
		WCapture: 100,
		WCheck:   50,
		WPromote: 800,
		WCenter:  10,
		WHanging: 90,
	},
}

var (
	mu      sync.RWMutex
	current *Config
)

// Load builds the configuration from defaults, the optional JSON file in the
// XDG config directories, then environment variables. The result also becomes
// what Get returns.
func Load() (*Config, error) {
	cfg := DefaultConfig
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := readCfgFile(absPath, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	current = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the last loaded configuration, or the defaults before Load.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		cfg := DefaultConfig
		return &cfg
	}
	cfg := *current
	return &cfg
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DefaultVariant = getenv("DEFAULT_VARIANT", cfg.DefaultVariant)
	cfg.RNGSeed = getenvInt64("RNG_SEED", cfg.RNGSeed)
	cfg.RoomCodeLength = getenvInt("ROOM_CODE_LENGTH", cfg.RoomCodeLength)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	cfg.Weights.WMate = getenvInt("W_MATE", cfg.Weights.WMate)
	cfg.Weights.WCapture = getenvInt("W_CAPTURE", cfg.Weights.WCapture)
	cfg.Weights.WCheck = getenvInt("W_CHECK", cfg.Weights.WCheck)
	cfg.Weights.WPromote = getenvInt("W_PROMOTE", cfg.Weights.WPromote)
	cfg.Weights.WCenter = getenvInt("W_CENTER", cfg.Weights.WCenter)
	cfg.Weights.WHanging = getenvInt("W_HANGING", cfg.Weights.WHanging)
}

var variants = []string{"classic", "coin_toss", "dice"}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return &InvalidConfig{"http_addr must not be empty"}
	}
	known := false
	for _, v := range variants {
		if strings.EqualFold(c.DefaultVariant, v) {
			known = true
		}
	}
	if !known {
		return &InvalidConfig{fmt.Sprintf("default_variant %q is not one of %s", c.DefaultVariant, strings.Join(variants, ", "))}
	}
	if c.RoomCodeLength < 4 || c.RoomCodeLength > 16 {
		return &InvalidConfig{fmt.Sprintf("room_code_length %d is outside 4..16", c.RoomCodeLength)}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("log_level %q: %v", c.LogLevel, err)}
	}
	return nil
}

// Level is the parsed log level; Validate guarantees it parses.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Save writes c to the user's XDG config file.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0o664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
