package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	appLogger  *logrus.Logger
	onceLogger sync.Once
)

func Logger() *logrus.Logger {
	onceLogger.Do(func() {
		appLogger = logrus.New()
		appLogger.SetOutput(os.Stdout)
		if IsProduction() {
			appLogger.SetFormatter(&logrus.JSONFormatter{})
		}
		level, err := logrus.ParseLevel(Env().LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		appLogger.SetLevel(level)
	})
	return appLogger
}
