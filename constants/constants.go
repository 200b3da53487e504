package constants

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a .env file into the environment if there is one. Variables
// already set win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func GetPort() int {
	port, err := strconv.Atoi(getEnv("PORT", ""))
	if err != nil {
		return 5000
	}
	return port
}

func GetDataDir() string {
	return getEnv("DATA_DIR", "./data")
}

// GetStoreKind is one of "file", "memory" or "dynamodb".
func GetStoreKind() string {
	return strings.ToLower(getEnv("STORE", "file"))
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "us-east-1")
}

func GetDynamoTable() string {
	return getEnv("DYNAMODB_TABLE", "pianocoach-sessions")
}

func GetLogFile() string {
	return getEnv("LOG_FILE", "pianocoach.log")
}

func IsProd() bool {
	return getEnv("APP_ENV", "development") == "production"
}

func GetCorsAllowedOrigins() []string {
	var res []string
	for _, o := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

// most recent sessions that go into an overall progress report
const ProgressSessionLimit = 5

const DefaultDevice = "MIDI Keyboard"
