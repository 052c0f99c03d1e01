package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Env holds the settings that may be supplied through the process environment
// (or a .env file in the working directory). Command-line flags take precedence.
type Env struct {
	Roster         string
	RosterUser     string
	Port           string
	Language       string
	DailyTrigger   string
	EveningTrigger string
}

// LoadEnv reads the optional .env file and returns the environment overlay.
// A missing .env file is not an error.
func LoadEnv() Env {
	if err := godotenv.Load(EnvFile); err != nil {
		slog.Debug(MsgEnvFileMissing, LogKeyComponent, CompConfig, LogKeyError, err)
	}

	return Env{
		Roster:         getEnv(EnvRoster, ""),
		RosterUser:     getEnv(EnvRosterUser, ""),
		Port:           getEnv(EnvPort, ""),
		Language:       getEnv(EnvLanguage, ""),
		DailyTrigger:   getEnv(EnvDailyTrigger, ""),
		EveningTrigger: getEnv(EnvEveningTrigger, ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
