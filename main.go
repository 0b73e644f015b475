package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"labonita/compras/cmd/export"
	"labonita/compras/cmd/history"
	"labonita/compras/cmd/load"
	"labonita/compras/cmd/record"
	"labonita/compras/cmd/root"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently, then pin the global log level
	// before any logger is created.
	loadEnvSilently()
	logrus.SetLevel(resolveLogLevel())

	root.Init()

	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(record.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// resolveLogLevel reads LOG_LEVEL before logging is configured, defaulting
// to info on absent or malformed values.
func resolveLogLevel() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		return logrus.InfoLevel
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
