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
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Google    Google    `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Retry     Retry     `mapstructure:",squash"`
	AuditSync AuditSync `mapstructure:",squash"`
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
}

// Google reúne as credenciais e o destino das planilhas de auditoria.
// Sem GOOGLE_SPREADSHEET_ID os snapshots ficam no armazenamento em
// memória, útil para desenvolvimento local.
type Google struct {
	CredentialsFile string `mapstructure:"google_credentials_file"`
	SpreadsheetID   string `mapstructure:"google_spreadsheet_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Retry struct {
	MaxRetries int           `mapstructure:"http_max_retries"`
	BaseDelay  time.Duration `mapstructure:"http_base_delay"`
}

// AuditSync configura o agendador de auditorias periódicas.
type AuditSync struct {
	Frequency string `mapstructure:"audit_sync_frequency"`
	DailyAt   string `mapstructure:"audit_sync_daily_at"`
	UserID    string `mapstructure:"audit_sync_user_id"`
	Enabled   bool   `mapstructure:"audit_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/stack_audit")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("GOOGLE_SPREADSHEET_ID", "")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("HTTP_MAX_RETRIES", 3)
	viper.SetDefault("HTTP_BASE_DELAY", "1s")

	// Defaults do agendador de auditorias
	viper.SetDefault("AUDIT_SYNC_FREQUENCY", "manual") // manual, daily ou weekly
	viper.SetDefault("AUDIT_SYNC_DAILY_AT", "03:00")
	viper.SetDefault("AUDIT_SYNC_USER_ID", "default")
	viper.SetDefault("AUDIT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
