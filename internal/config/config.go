package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"hufschlaeger.net/todo-client/internal/notify"
)

const DefaultAPIBaseURL = "http://localhost:8000/api"

type Config struct {
	APIBaseURL    string
	HTTPTimeout   time.Duration
	ToastDuration time.Duration
	ToastThrottle time.Duration
	ToastLimit    int
	Timezone      string
	ConfigFile    string
	Verbose       bool
}

// fileConfig ist das Format der optionalen YAML-Datei.
type fileConfig struct {
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	Toast struct {
		Duration time.Duration `mapstructure:"duration"`
		Throttle time.Duration `mapstructure:"throttle"`
		Limit    int           `mapstructure:"limit"`
	} `mapstructure:"toast"`
	Timezone string `mapstructure:"timezone"`
	Verbose  bool   `mapstructure:"verbose"`
}

func Default() *Config {
	toast := notify.DefaultOptions()
	return &Config{
		APIBaseURL:    DefaultAPIBaseURL,
		HTTPTimeout:   30 * time.Second,
		ToastDuration: toast.Duration,
		ToastThrottle: toast.Throttle,
		ToastLimit:    toast.Limit,
	}
}

// NewConfig lädt Defaults, dann die YAML-Datei, dann Environment (inkl. .env).
func NewConfig() (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if os.Getenv("GODOTENV_DISABLE") == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Printf("⚠️  Warnung beim Laden der .env: %v\n", err)
		}
	}

	cfg := Default()
	cfg.ConfigFile = getEnv("TODO_CONFIG", defaultConfigPath())

	if err := loadFile(cfg.ConfigFile, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config-Datei %s: %w", cfg.ConfigFile, err)
	}

	cfg.APIBaseURL = getEnv("TODO_API_BASE_URL", cfg.APIBaseURL)
	cfg.HTTPTimeout = getDurationEnv("TODO_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.ToastDuration = getDurationEnv("TODO_TOAST_DURATION", cfg.ToastDuration)
	cfg.ToastThrottle = getDurationEnv("TODO_TOAST_THROTTLE", cfg.ToastThrottle)
	cfg.ToastLimit = getIntEnv("TODO_TOAST_LIMIT", cfg.ToastLimit)
	cfg.Timezone = getEnv("TODO_TIMEZONE", cfg.Timezone)
	cfg.Verbose = getBoolEnv("VERBOSE", cfg.Verbose)

	if cfg.Verbose {
		cfg.printDebugInfo()
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return os.ErrNotExist
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return err
	}

	// Nur gesetzte Werte übernehmen
	if fc.API.BaseURL != "" {
		cfg.APIBaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout > 0 {
		cfg.HTTPTimeout = fc.API.Timeout
	}
	if v.IsSet("toast.duration") {
		cfg.ToastDuration = fc.Toast.Duration
	}
	if v.IsSet("toast.throttle") {
		cfg.ToastThrottle = fc.Toast.Throttle
	}
	if fc.Toast.Limit > 0 {
		cfg.ToastLimit = fc.Toast.Limit
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo", "config.yaml")
}

func (c *Config) printDebugInfo() {
	fmt.Printf("🔧 Configuration loaded:\n")
	fmt.Printf("   API URL: %s\n", c.APIBaseURL)
	fmt.Printf("   HTTP Timeout: %s\n", c.HTTPTimeout)
	fmt.Printf("   Toasts: duration=%s throttle=%s limit=%d\n", c.ToastDuration, c.ToastThrottle, c.ToastLimit)
	if c.Timezone != "" {
		fmt.Printf("   Timezone: %s\n", c.Timezone)
	}
	if c.ConfigFile != "" {
		fmt.Printf("   Config File: %s\n", c.ConfigFile)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv akzeptiert Go-Durations ("3s") und Millisekunden ("3000").
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API URL ungültig (TODO_API_BASE_URL): %q", c.APIBaseURL)
	}
	if c.HTTPTimeout < 0 || c.ToastDuration < 0 || c.ToastThrottle < 0 {
		return fmt.Errorf("zeitangaben dürfen nicht negativ sein")
	}
	if c.ToastLimit <= 0 {
		return fmt.Errorf("toast-Limit muss größer 0 sein (TODO_TOAST_LIMIT)")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location liefert die Zeitzone für Tagesvergleiche (Default: lokal).
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("zeitzone ungültig (TODO_TIMEZONE): %w", err)
	}
	return loc, nil
}

func (c *Config) GetAPIBaseURL() string {
	return strings.TrimSuffix(c.APIBaseURL, "/")
}
