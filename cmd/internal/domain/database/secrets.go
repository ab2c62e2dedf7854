package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"secretaria/cmd/internal/config"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefers the credentials set in the environment, falling
// back to the JSON secret stored under cfg.SecretID.
func retrieveCredentials(cfg *config.DBConfig) (string, string, error) {
	if cfg.Username != "" && cfg.Password != "" {
		return cfg.Username, cfg.Password, nil
	}

	if cfg.SecretID == "" {
		return "", "", fmt.Errorf("database credentials missing: set DB_USERNAME/DB_PASSWORD or DB_SECRET_ID")
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.SecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to read secret %s: %w", cfg.SecretID, err)
	}

	return parseCredentials(aws.ToString(result.SecretString))
}

func parseCredentials(secret string) (string, string, error) {
	var creds credentials
	if err := json.Unmarshal([]byte(secret), &creds); err != nil {
		return "", "", fmt.Errorf("malformed database secret: %w", err)
	}

	if creds.Username == "" || creds.Password == "" {
		return "", "", fmt.Errorf("database secret is missing username or password")
	}
	return creds.Username, creds.Password, nil
}
