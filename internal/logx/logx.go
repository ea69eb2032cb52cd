package logx

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "voxmesh",
				})
				l.SetLevel(log.InfoLevel)
				singleton = &logger{l}
			})
	}
	return singleton
}

// SetVerbose lowers the level to debug.
func SetVerbose() {
	getLogger().SetLevel(log.DebugLevel)
}

func Debug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
