package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL é retornado quando o extrator é iniciado sem DATABASE_URL.
// Não existe credencial embutida como fallback.
var ErrMissingDatabaseURL = errors.New("config: DATABASE_URL é obrigatório para o extrator")

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Snapshot     Snapshot     `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	URL          string        `mapstructure:"database_url"`
	QueryTimeout time.Duration `mapstructure:"etl_query_timeout"`
}

type Snapshot struct {
	BucketURL   string `mapstructure:"snapshot_bucket_url"`
	Key         string `mapstructure:"snapshot_key"`
	Compression string `mapstructure:"snapshot_compression"`
}

type SnapshotSync struct {
	CronSchedule string `mapstructure:"etl_sync_cron"`
	Enabled      bool   `mapstructure:"etl_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	// DATABASE_URL propositalmente sem default
	viper.SetDefault("ETL_QUERY_TIMEOUT", "10m")

	viper.SetDefault("SNAPSHOT_BUCKET_URL", "file://./data")
	viper.SetDefault("SNAPSHOT_KEY", "dados_analiticos.parquet")
	viper.SetDefault("SNAPSHOT_COMPRESSION", "snappy")

	viper.SetDefault("ETL_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("ETL_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Chaves sem default precisam de BindEnv para o Unmarshal enxergá-las
	if err := viper.BindEnv("DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	return config, nil
}

// RequireDatabase valida a configuração usada pelo extrator.
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
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
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
