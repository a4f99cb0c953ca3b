package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Modos de ingestão suportados pelo handler de scrape
const (
	ModeLenient = "lenient"
	ModeKeyword = "keyword"
	ModeStrict  = "strict"
)

// Adaptadores do serviço de identidade
const (
	IdentityJWT    = "jwt"
	IdentityRemote = "remote"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Scrape   Scrape   `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Meta struct {
	BaseURL        string `mapstructure:"meta_base_url"`
	URL            string `mapstructure:"-"`
	Version        string `mapstructure:"meta_version"`
	AccessToken    string `mapstructure:"facebook_access_token"`
	TimeoutSeconds int    `mapstructure:"meta_timeout_seconds"`
}

// Timeout do cliente HTTP da Ad Library
func (m Meta) Timeout() time.Duration {
	if m.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(m.TimeoutSeconds) * time.Second
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Mode   string `mapstructure:"auth_mode"`
	Secret string `mapstructure:"auth_jwt_secret"`
	URL    string `mapstructure:"supabase_url"`
	APIKey string `mapstructure:"supabase_anon_key"`
}

type Scrape struct {
	Mode             string `mapstructure:"scrape_mode"`
	DefaultDateRange int    `mapstructure:"scrape_default_date_range"`
	Limit            int    `mapstructure:"scrape_limit"`
	Country          string `mapstructure:"scrape_country"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v18.0")
	viper.SetDefault("FACEBOOK_ACCESS_TOKEN", "") // sem token o scrape usa os anúncios de exemplo
	viper.SetDefault("META_TIMEOUT_SECONDS", 30)

	viper.SetDefault("AUTH_MODE", "")
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_ANON_KEY", "")

	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SCRAPE_MODE", ModeKeyword)
	viper.SetDefault("SCRAPE_DEFAULT_DATE_RANGE", 30)
	viper.SetDefault("SCRAPE_LIMIT", 50)
	viper.SetDefault("SCRAPE_COUNTRY", "IN")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	if config.Auth.Mode == "" {
		config.Auth.Mode = IdentityRemote
		if config.Auth.Secret != "" {
			config.Auth.Mode = IdentityJWT
		}
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere as combinações de configuração que não podem ser resolvidas por padrão
func (c *Config) Validate() error {
	switch c.Scrape.Mode {
	case ModeLenient, ModeKeyword, ModeStrict:
	default:
		return errors.Errorf("scrape_mode inválido: %q", c.Scrape.Mode)
	}

	if c.Scrape.DefaultDateRange < 0 {
		return errors.New("scrape_default_date_range não pode ser negativo")
	}

	if c.Scrape.Limit <= 0 {
		return errors.New("scrape_limit deve ser maior que zero")
	}

	switch c.Auth.Mode {
	case IdentityJWT:
		if c.Auth.Secret == "" {
			return errors.New("auth_jwt_secret é obrigatório no modo jwt")
		}
	case IdentityRemote:
		if c.Auth.URL == "" {
			return errors.New("supabase_url é obrigatório no modo remote")
		}
	default:
		return errors.Errorf("auth_mode inválido: %q", c.Auth.Mode)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
