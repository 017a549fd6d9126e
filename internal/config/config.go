package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	Cors              Cors              `mapstructure:",squash"`
	DailySnapshotSync DailySnapshotSync `mapstructure:",squash"`
	SecretKey         string            `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Locale   string `mapstructure:"app_locale"`
	Currency string `mapstructure:"app_currency"`
	Timezone string `mapstructure:"app_timezone"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DailySnapshotSync struct {
	CronSchedule      string `mapstructure:"daily_snapshot_cron"`
	LookbackDays      int    `mapstructure:"daily_snapshot_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"daily_snapshot_max_concurrent_jobs"`
	RetentionDays     int    `mapstructure:"daily_snapshot_retention_days"`
	Enabled           bool   `mapstructure:"daily_snapshot_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("APP_LOCALE", "nl")
	viper.SetDefault("APP_CURRENCY", "EUR")
	viper.SetDefault("APP_TIMEZONE", "Europe/Amsterdam")

	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")

	// Defaults para o resumo diário de vendas
	viper.SetDefault("DAILY_SNAPSHOT_CRON", "30 0 * * *")     // Todos os dias às 00:30
	viper.SetDefault("DAILY_SNAPSHOT_LOOKBACK_DAYS", 2)       // Ontem e hoje
	viper.SetDefault("DAILY_SNAPSHOT_MAX_CONCURRENT_JOBS", 3) // 3 usuários em paralelo
	viper.SetDefault("DAILY_SNAPSHOT_RETENTION_DAYS", 365)    // Um ano de histórico
	viper.SetDefault("DAILY_SNAPSHOT_ENABLED", false)

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location retorna o fuso usado para definir o dia de cada venda.
// Um fuso inválido cai para UTC.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		logrus.Warnf("Fuso horário inválido %q, usando UTC: %v", c.App.Timezone, err)
		return time.UTC
	}

	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
