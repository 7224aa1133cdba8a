// Package config exposes build identity and runtime configuration for
// authboard. Values come from the environment (optionally seeded from a .env
// file) with an optional TOML file as fallback.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// FileConfig mirrors the keys accepted in the optional TOML config file.
// Environment variables always win over file values.
type FileConfig struct {
	Listen         string `toml:"listen"`
	Port           int    `toml:"port"`
	DBFolder       string `toml:"db_folder"`
	LogFolder      string `toml:"log_folder"`
	Secret         string `toml:"secret"`
	SessionMinutes int    `toml:"session_minutes"`
}

var fileConfig FileConfig

// LoadFile parses the TOML config file named by AB_CONFIG, if set.
func LoadFile() error {
	path := os.Getenv("AB_CONFIG")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, &fileConfig)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("AB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("AB_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("AB_LISTEN")
	if listen == "" {
		listen = fileConfig.Listen
	}
	return listen
}

func GetPort() int {
	if port, err := strconv.Atoi(os.Getenv("AB_PORT")); err == nil {
		return port
	}
	if fileConfig.Port != 0 {
		return fileConfig.Port
	}
	return 8080
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("AB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = fileConfig.DBFolder
	}
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("AB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = fileConfig.LogFolder
	}
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetSecret returns the key used to authenticate session cookies.
func GetSecret() string {
	secret := os.Getenv("AB_SECRET")
	if secret == "" {
		secret = fileConfig.Secret
	}
	if secret == "" {
		secret = "dev_default_secret_key"
	}
	return secret
}

// GetSessionMaxAge returns the session idle lifetime in minutes.
func GetSessionMaxAge() int {
	if minutes, err := strconv.Atoi(os.Getenv("AB_SESSION_MINUTES")); err == nil && minutes > 0 {
		return minutes
	}
	if fileConfig.SessionMinutes > 0 {
		return fileConfig.SessionMinutes
	}
	return 15
}

// PasswordRequireSpecial reports whether registration requires a special
// character in passwords. Enabled unless explicitly switched off.
func PasswordRequireSpecial() bool {
	return os.Getenv("AB_PASSWORD_REQUIRE_SPECIAL") != "false"
}
