package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables a rotated log file next to stdout.
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

type Scheduler struct {
	IntervalSec int `mapstructure:"interval_sec"`
}

func (s Scheduler) Interval() time.Duration {
	return time.Duration(s.IntervalSec) * time.Second
}

type Arbitrage struct {
	Assets             []string `mapstructure:"assets"`
	Exchanges          []string `mapstructure:"exchanges"`
	FeePerTradePct     float64  `mapstructure:"fee_per_trade_pct"`
	ProfitThresholdPct float64  `mapstructure:"profit_threshold_pct"`
}

type Alert struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID string `mapstructure:"telegram_chat_id"`
	CooldownSec    int    `mapstructure:"cooldown_sec"`
	DashboardURL   string `mapstructure:"dashboard_url"`
}

// Enabled is false when either Telegram setting is missing; alerting is then inert.
func (a Alert) Enabled() bool {
	return a.TelegramToken != "" && a.TelegramChatID != ""
}

func (a Alert) Cooldown() time.Duration {
	return time.Duration(a.CooldownSec) * time.Second
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Arbitrage  Arbitrage  `mapstructure:"arbitrage"`
	Alert      Alert      `mapstructure:"alert"`
	Cache      Cache      `mapstructure:"cache"`
}

func (c *AppConfig) Validate() error {
	if len(c.Arbitrage.Assets) == 0 {
		return errors.New("at least one tracked asset is required")
	}
	if len(c.Arbitrage.Exchanges) == 0 {
		return errors.New("at least one tracked exchange is required")
	}
	if c.Arbitrage.FeePerTradePct < 0 {
		return fmt.Errorf("fee per trade must not be negative, got %v", c.Arbitrage.FeePerTradePct)
	}
	if c.Scheduler.IntervalSec <= 0 {
		return fmt.Errorf("tick interval must be positive, got %d", c.Scheduler.IntervalSec)
	}
	if c.Alert.CooldownSec < 0 {
		return fmt.Errorf("alert cooldown must not be negative, got %d", c.Alert.CooldownSec)
	}
	return nil
}

// Init loads configuration from an optional .env file, an optional config.yaml
// and the environment, in increasing order of precedence.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(viper.New(), ".")
}

// Load reads config.yaml from dir (if present) into v and applies defaults and env bindings.
func Load(v *viper.Viper, dir string) (*AppConfig, error) {
	var cfg AppConfig

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Arbitrage.Assets = normalizeList(cfg.Arbitrage.Assets, strings.ToUpper)
	cfg.Arbitrage.Exchanges = normalizeList(cfg.Arbitrage.Exchanges, strings.ToLower)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")

	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.user", "postgres")
	v.SetDefault("db_server.pass", "postgres")
	v.SetDefault("db_server.name", "crypto_arb_db")
	v.SetDefault("db_server.max_conns", 10)

	v.SetDefault("http_client.timeout_seconds", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 50)

	v.SetDefault("scheduler.interval_sec", 30)

	v.SetDefault("arbitrage.assets", []string{"BTC", "ETH", "SOL"})
	v.SetDefault("arbitrage.exchanges", []string{"kraken", "coinbase", "bitfinex", "gemini"})
	v.SetDefault("arbitrage.fee_per_trade_pct", 0.15)
	v.SetDefault("arbitrage.profit_threshold_pct", 0.5)

	v.SetDefault("alert.telegram_token", "")
	v.SetDefault("alert.telegram_chat_id", "")
	v.SetDefault("alert.cooldown_sec", 600)
	v.SetDefault("alert.dashboard_url", "http://localhost:8501")

	v.SetDefault("cache.max_items", 1024)
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// logging env vars
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.file", "LOG_FILE")

	// scheduler env vars
	_ = v.BindEnv("scheduler.interval_sec", "TICK_INTERVAL_SEC")

	// arbitrage env vars
	_ = v.BindEnv("arbitrage.assets", "TRACKED_ASSETS")
	_ = v.BindEnv("arbitrage.exchanges", "TRACKED_EXCHANGES")
	_ = v.BindEnv("arbitrage.fee_per_trade_pct", "FEE_PER_TRADE_PCT")
	_ = v.BindEnv("arbitrage.profit_threshold_pct", "PROFIT_ALERT_THRESHOLD_PCT")

	// alert env vars
	_ = v.BindEnv("alert.telegram_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("alert.telegram_chat_id", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("alert.cooldown_sec", "ALERT_COOLDOWN_SEC")
	_ = v.BindEnv("alert.dashboard_url", "DASHBOARD_URL")

	_ = v.BindEnv("cache.max_items", "CACHE_MAX_ITEMS")
}

// normalizeList trims and case-folds entries, dropping blanks and duplicates.
// Env values arrive as a single comma separated string.
func normalizeList(in []string, fold func(string) string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, item := range strings.Split(raw, ",") {
			item = fold(strings.TrimSpace(item))
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
