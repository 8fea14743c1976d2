package config

import (
	"os"
)

type JWTConfig struct {
	Secret string
	Issuer string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	FrontendURL    string
	AllowedOrigins string
	JWT            JWTConfig
	Email          EmailConfig
	S3             S3Config

	// Path to the Firebase service account file; push delivery is
	// disabled when empty.
	FirebaseCredentialsFile string
}

func LoadConfig() *Config {
	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", "gatherly"),
		},
		Email: EmailConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Gatherly"),
		},
		S3: S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getEnv("S3_REGION", "auto"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("S3_BUCKET"),
			PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		},
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
