// Package config собирает настройки сервиса из значений по умолчанию, файла
// конфигурации, флагов командной строки и переменных окружения (в порядке возрастания приоритета).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит настройки приложения
type Config struct {
	RunAddr          string        `mapstructure:"server_address"`
	GRPCAddr         string        `mapstructure:"grpc_address"`
	DatabaseDSN      string        `mapstructure:"database_dsn"`
	BadgerPath       string        `mapstructure:"badger_path"`
	FileStoragePath  string        `mapstructure:"file_storage_path"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	CookieTTL        time.Duration `mapstructure:"cookie_ttl"`
	TrustedSubnet    string        `mapstructure:"trusted_subnet"`
	LogLevel         string        `mapstructure:"log_level"`
	BodyPolicy       string        `mapstructure:"body_policy"`
	CompensateWrites bool          `mapstructure:"compensate_writes"`
	// ConfigFile - путь к прочитанному файлу конфигурации, пустой если файла нет
	ConfigFile string `mapstructure:"-"`
}

// setting описывает один параметр: ключ viper, флаг, переменную окружения и значение по умолчанию
type setting struct {
	key   string
	flag  string
	env   string
	def   any
	usage string
}

var settings = []setting{
	{"server_address", "a", "SERVER_ADDRESS", ":8080", "address and port to run HTTP server"},
	{"grpc_address", "g", "GRPC_ADDRESS", "", "address and port to run gRPC server, empty disables it"},
	{"database_dsn", "d", "DATABASE_DSN", "", "database DSN (postgres://... or sqlite://...)"},
	{"badger_path", "k", "BADGER_PATH", "", "directory for the badger key-value store"},
	{"file_storage_path", "f", "FILE_STORAGE_PATH", "", "path to the append-only storage file"},
	{"jwt_secret", "j", "JWT_SECRET", "default_jwt_secret", "JWT secret key"},
	{"cookie_ttl", "cookie-ttl", "COOKIE_TTL", 24 * time.Hour, "auth cookie lifetime"},
	{"trusted_subnet", "t", "TRUSTED_SUBNET", "", "CIDR allowed to call dev routes"},
	{"log_level", "l", "LOG_LEVEL", "info", "log level"},
	{"body_policy", "body-policy", "BODY_POLICY", "lenient", "malformed JSON body handling: lenient or strict"},
	{"compensate_writes", "compensate", "COMPENSATE_WRITES", false, "delete already written rows when a link create fails"},
}

// NewConfig загружает .env (если есть) и читает настройки из аргументов процесса и окружения
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Load(os.Args[1:], os.Getenv)
}

// Load собирает конфигурацию из args и getenv
func Load(args []string, getenv func(string) string) (*Config, error) {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
	}

	flags := flag.NewFlagSet("linkvault", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("c", "", "path to config file (yaml, json or toml)")
	for _, s := range settings {
		switch def := s.def.(type) {
		case bool:
			flags.Bool(s.flag, def, s.usage)
		case time.Duration:
			flags.Duration(s.flag, def, s.usage)
		default:
			flags.String(s.flag, fmt.Sprint(def), s.usage)
		}
	}
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Файл конфигурации: CONFIG важнее -c
	if env := getenv("CONFIG"); env != "" {
		*configPath = env
	}
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// Флаги перекрывают файл, только если заданы явно
	byFlag := make(map[string]string, len(settings))
	for _, s := range settings {
		byFlag[s.flag] = s.key
	}
	flags.Visit(func(f *flag.Flag) {
		if key, ok := byFlag[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})

	// Переменные окружения перекрывают всё
	for _, s := range settings {
		if val := getenv(s.env); val != "" {
			v.Set(s.key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = *configPath

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize приводит адреса к виду host:port и готовит каталоги хранилищ
func (c *Config) normalize() error {
	c.RunAddr = normalizeAddr(c.RunAddr)
	if c.GRPCAddr != "" {
		c.GRPCAddr = normalizeAddr(c.GRPCAddr)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.FileStoragePath != "" {
		if err := os.MkdirAll(filepath.Dir(c.FileStoragePath), 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	if c.BadgerPath != "" {
		if err := os.MkdirAll(c.BadgerPath, 0o755); err != nil {
			return fmt.Errorf("create badger dir: %w", err)
		}
	}
	return nil
}

func normalizeAddr(addr string) string {
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// StoreKind возвращает выбранный тип хранилища: sql, badger, file или memory
func (c *Config) StoreKind() string {
	switch {
	case c.DatabaseDSN != "":
		return "sql"
	case c.BadgerPath != "":
		return "badger"
	case c.FileStoragePath != "":
		return "file"
	default:
		return "memory"
	}
}
