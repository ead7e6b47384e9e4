package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Naming maps a date key to the on-disk filename of a dated image.
type Naming struct {
	Prefix     string
	DateFormat string
	Ext        string
}

// FileName returns the dated image filename for dateKey, e.g. bing_2023-10-27.jpg.
func (n Naming) FileName(dateKey string) string {
	return n.Prefix + dateKey + n.Ext
}

// DateKey formats t as a date key.
func (n Naming) DateKey(t time.Time) string {
	return t.Format(n.DateFormat)
}

type Config struct {
	Host       string `toml:"host"`
	Market     string `toml:"market"`
	Resolution string `toml:"resolution"`

	// CacheDir replaces <pictures>/<DirName>. It must be a directory used only
	// by bingpaper: pruning removes any regular file in it past KeepCount.
	CacheDir string `toml:"cache_dir,omitempty"`
	DirName  string `toml:"dir_name"`
	Previews bool   `toml:"previews"`

	// Download
	MaxDownloadMB   int    `toml:"max_download_mb"`
	DownloadTimeout int    `toml:"download_timeout"`
	UserAgent       string `toml:"user_agent"`

	// Proxy
	InsecureSkipVerify   bool   `toml:"insecure_skip_verify,omitempty"`
	AllowPrivateNetworks bool   `toml:"allow_private_networks,omitempty"`
	ProxyType            string `toml:"proxy_type,omitempty"`
	ProxyHost            string `toml:"proxy_host,omitempty"`
	ProxyPort            string `toml:"proxy_port,omitempty"`
	ProxyUsername        string `toml:"proxy_username,omitempty"`
	ProxyPassword        string `toml:"proxy_password,omitempty"`

	LogFile string `toml:"log_file,omitempty"`

	// Retention and naming are fixed; they are never read from file or env.
	KeepCount int    `toml:"-"`
	Naming    Naming `toml:"-"`
}

const defaultConfigPath = "~/.config/bingpaper/config.toml"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:            DefaultHost,
		Market:          DefaultMarket,
		Resolution:      DefaultResolution,
		DirName:         DefaultDirName,
		Previews:        true,
		MaxDownloadMB:   DefaultMaxDownloadMB,
		DownloadTimeout: DefaultDownloadTimeout,
		UserAgent:       DefaultUserAgent,
		ProxyType:       "http",
		KeepCount:       DefaultKeepCount,
		Naming: Naming{
			Prefix:     DefaultFilePrefix,
			DateFormat: DefaultDateFormat,
			Ext:        DefaultFileExt,
		},
	}
}

// Load reads the TOML config at path (or the default path when empty), then
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	validate(&cfg)
	return cfg, nil
}

// Timeout returns the download timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.DownloadTimeout) * time.Second
}

// MaxDownloadBytes returns the download size cap in bytes.
func (c Config) MaxDownloadBytes() int64 {
	return int64(c.MaxDownloadMB) << 20
}

func applyEnv(cfg *Config) {
	override := func(target *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*target = v
				return
			}
		}
	}

	override(&cfg.Market, "BINGPAPER_MARKET")
	override(&cfg.Resolution, "BINGPAPER_RESOLUTION")
	override(&cfg.CacheDir, "BINGPAPER_DIR")
	override(&cfg.LogFile, "BINGPAPER_LOG_FILE")
	override(&cfg.ProxyType, "PROXY_TYPE")
	override(&cfg.ProxyHost, "PROXY_HOST", "PROXY_ADDRESS")
	override(&cfg.ProxyPort, "PROXY_PORT")
	override(&cfg.ProxyUsername, "PROXY_USER", "PROXY_USERNAME", "PROXY_LOGIN")
	override(&cfg.ProxyPassword, "PROXY_PASS", "PROXY_PASSWORD")

	if v := os.Getenv("MAX_DOWNLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDownloadMB = n
		}
	}
	if v := os.Getenv("DOWNLOAD_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DownloadTimeout = n
		}
	}
	if v := os.Getenv("INSECURE_SKIP_VERIFY"); v == "true" {
		cfg.InsecureSkipVerify = true
	}
	if v := os.Getenv("ALLOW_PRIVATE_NETWORKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AllowPrivateNetworks = b
		}
	}
	if v := os.Getenv("BINGPAPER_PREVIEWS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Previews = b
		}
	}
}

func validate(cfg *Config) {
	if strings.TrimSpace(cfg.Host) == "" {
		cfg.Host = DefaultHost
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")
	if !strings.HasPrefix(cfg.Host, "https://") && !strings.HasPrefix(cfg.Host, "http://") {
		log.Printf("Warning: Invalid host '%s', using %s", cfg.Host, DefaultHost)
		cfg.Host = DefaultHost
	}

	if strings.TrimSpace(cfg.Market) == "" {
		cfg.Market = DefaultMarket
	}
	if strings.TrimSpace(cfg.Resolution) == "" {
		cfg.Resolution = DefaultResolution
	}

	if strings.TrimSpace(cfg.DirName) == "" || strings.ContainsAny(cfg.DirName, `/\`) || cfg.DirName == ".." {
		log.Printf("Warning: Invalid dir_name '%s', using %s", cfg.DirName, DefaultDirName)
		cfg.DirName = DefaultDirName
	}

	if cfg.MaxDownloadMB < MinDownloadMB {
		log.Printf("Warning: MaxDownloadMB must be at least %d, setting to %d", MinDownloadMB, DefaultMaxDownloadMB)
		cfg.MaxDownloadMB = DefaultMaxDownloadMB
	}
	if cfg.MaxDownloadMB > 500 {
		log.Printf("Warning: MaxDownloadMB is very high (%d MB), this may cause memory issues", cfg.MaxDownloadMB)
	}

	if cfg.DownloadTimeout < 1 {
		log.Printf("Warning: DownloadTimeout must be at least 1 second, setting to %d", DefaultDownloadTimeout)
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}

	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if cfg.ProxyHost != "" {
		if cfg.ProxyType != "http" && cfg.ProxyType != "https" && cfg.ProxyType != "socks5" {
			log.Printf("Warning: Invalid ProxyType '%s', must be http, https, or socks5. Using http.", cfg.ProxyType)
			cfg.ProxyType = "http"
		}
		if cfg.ProxyPort == "" {
			log.Println("Warning: ProxyHost is set but ProxyPort is empty")
		}
	}

	if cfg.InsecureSkipVerify {
		log.Println("⚠️  WARNING: TLS certificate verification is disabled (InsecureSkipVerify=true).")
	}

	if cfg.CacheDir != "" {
		cfg.CacheDir = mustExpand(cfg.CacheDir)
		log.Printf("Warning: cache_dir is %s; every file in it beyond the newest %d is deleted after each run", cfg.CacheDir, cfg.KeepCount)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	// Only ~ and ~/...; ~user is left alone.
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") || strings.HasPrefix(trimmed, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, trimmed[1:])
	}
	return filepath.Abs(trimmed)
}
