package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fintools/bankfeed/cmd/categorize"
	"fintools/bankfeed/cmd/csvimport"
	"fintools/bankfeed/cmd/root"
	"fintools/bankfeed/cmd/statement"
)

func init() {
	// Load environment variables before any logging happens so LOG_LEVEL
	// and GEMINI_API_KEY are visible to configuration.
	loadEnvSilently()
	configureLogLevel()

	root.Init()
	root.Cmd.AddCommand(csvimport.Cmd)
	root.Cmd.AddCommand(statement.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

// loadEnvSilently loads a .env file without logging anything.
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

// configureLogLevel sets the global logrus level from LOG_LEVEL before the
// commands build their own loggers.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
