package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	Env        string
	LogLevel   string

	InvoiceCSVPath      string
	EmployeeXLSXPath    string
	DatabaseURL         string
	CategoryConfigPath  string
	ClassifierModelPath string
	ReloadSchedule      string

	LLMProvider  string
	LLMModel     string
	GeminiAPIKey string
	OpenAIAPIKey string

	SummaryTTL time.Duration

	TesseractDataPath string
	MaxFileSize       int64

	CORSOrigins []string

	Archive ArchiveConfig
}

// ArchiveConfig points at an S3-compatible bucket (Cloudflare R2 in production).
// Archiving is disabled when Bucket is empty.
type ArchiveConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != "" && a.Endpoint != ""
}

func LoadConfig() *Config {
	// .env is optional; real env vars take precedence
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		InvoiceCSVPath:      getEnv("INVOICE_CSV_PATH", "invoice_database.csv"),
		EmployeeXLSXPath:    getEnv("EMPLOYEE_XLSX_PATH", "Employee.xlsx"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CategoryConfigPath:  os.Getenv("CATEGORY_CONFIG_PATH"),
		ClassifierModelPath: os.Getenv("CLASSIFIER_MODEL_PATH"),
		ReloadSchedule:      getEnv("RELOAD_SCHEDULE", "@every 5m"),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:     os.Getenv("LLM_MODEL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		SummaryTTL: getEnvDuration("SUMMARY_TTL", 30*time.Minute),

		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		MaxFileSize:       10 * 1024 * 1024, // 10 MB

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		Archive: ArchiveConfig{
			Endpoint:      os.Getenv("R2_ENDPOINT"),
			AccessKey:     os.Getenv("R2_ACCESS_KEY"),
			SecretKey:     os.Getenv("R2_SECRET_KEY"),
			Bucket:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
