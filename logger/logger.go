package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the logger shared by every package in the project.
// The level comes from ENGRAVER_LOG_LEVEL and defaults to info.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.InfoLevel)
		if lvl, err := logrus.ParseLevel(os.Getenv("ENGRAVER_LOG_LEVEL")); err == nil {
			l.SetLevel(lvl)
		}
		projectLogger = l
	})
	return projectLogger
}
