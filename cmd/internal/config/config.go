package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

const (
	envVarsPrefix = "/secretaria/prod/"
	ssmRegion     = "us-east-2"
)

type Config struct {
	Env      string
	Port     string
	Timezone string

	DB       DBConfig
	Storage  StorageConfig
	Alerts   AlertConfig
	Gateway  GatewayConfig
	Auth     AuthConfig
	RedisURL string

	KanbanWebhookURL string
	SlackBotToken    string
	RollbarToken     string
	MachineID        int64
}

type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	Name     string
	Username string
	Password string
	SecretID string
	SSLMode  string
}

type StorageConfig struct {
	Region string
	Bucket string
}

type AlertConfig struct {
	Interval            time.Duration
	TenureDays          int
	ConsecutiveAbsences int
}

type GatewayConfig struct {
	Endpoint string
	Region   string
}

type AuthConfig struct {
	JWKSURL  string
	CacheTTL time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadEnv exports the process environment: AWS SSM Parameter Store in
// production, the local .env file otherwise. A missing .env is not an error.
func LoadEnv() error {
	if os.Getenv("GO_ENV") == "production" {
		return loadProdEnv(context.Background())
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the typed configuration from the environment, applying defaults.
func Load() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Env:      v.GetString("GO_ENV"),
		Port:     v.GetString("PORT"),
		Timezone: v.GetString("TIMEZONE"),
		DB: DBConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			Username: v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			SecretID: v.GetString("DB_SECRET_ID"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Storage: StorageConfig{
			Region: v.GetString("AWS_S3_REGION"),
			Bucket: v.GetString("S3_BUCKET_NAME"),
		},
		Alerts: AlertConfig{
			Interval:            v.GetDuration("ALERT_INTERVAL"),
			TenureDays:          v.GetInt("ALERT_TENURE_DAYS"),
			ConsecutiveAbsences: v.GetInt("ALERT_CONSECUTIVE_ABSENCES"),
		},
		Gateway: GatewayConfig{
			Endpoint: v.GetString("WS_GATEWAY_ENDPOINT"),
			Region:   v.GetString("WS_GATEWAY_REGION"),
		},
		Auth: AuthConfig{
			JWKSURL:  v.GetString("AUTH_JWKS_URL"),
			CacheTTL: v.GetDuration("AUTH_CACHE_TTL"),
		},
		RedisURL:         v.GetString("REDIS_ADDR"),
		KanbanWebhookURL: v.GetString("KANBAN_WEBHOOK_URL"),
		SlackBotToken:    v.GetString("SLACK_BOT_TOKEN"),
		RollbarToken:     v.GetString("ROLLBAR_TOKEN"),
		MachineID:        v.GetInt64("MACHINE_ID"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", "7070")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "database.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "secretaria")
	v.SetDefault("DB_USERNAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SECRET_ID", "")
	v.SetDefault("DB_SSL_MODE", "require")

	v.SetDefault("AWS_S3_REGION", "us-east-2")
	v.SetDefault("S3_BUCKET_NAME", "")

	v.SetDefault("ALERT_INTERVAL", time.Hour)
	v.SetDefault("ALERT_TENURE_DAYS", 90)
	v.SetDefault("ALERT_CONSECUTIVE_ABSENCES", 2)

	v.SetDefault("WS_GATEWAY_ENDPOINT", "")
	v.SetDefault("WS_GATEWAY_REGION", "us-east-2")

	v.SetDefault("AUTH_JWKS_URL", "")
	v.SetDefault("AUTH_CACHE_TTL", 10*time.Minute)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KANBAN_WEBHOOK_URL", "")
	v.SetDefault("SLACK_BOT_TOKEN", "")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("MACHINE_ID", 1)
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ssmRegion))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	prefixLength := len(envVarsPrefix)
	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := (*param.Name)[prefixLength:]
			if err := os.Setenv(key, *param.Value); err != nil {
				return fmt.Errorf("unable to set environment variable: %w", err)
			}
			count++
		}
	}
	log.Debugf("loaded %d prod environment variables", count)
	return nil
}
