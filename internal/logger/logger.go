package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the JSON field layout shared by all components.
type Logger struct {
	*logrus.Logger
}

func New(level string) *Logger {
	log := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stdout)

	return &Logger{Logger: log}
}

func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// Audit records a security-relevant action in a fixed shape so the entries
// are easy to filter out of the main stream.
func (l *Logger) Audit(identity, action, resource string, success bool) {
	entry := l.Logger.WithFields(logrus.Fields{
		"audit":    true,
		"identity": identity,
		"action":   action,
		"resource": resource,
		"success":  success,
	})
	if success {
		entry.Info("audit event")
	} else {
		entry.Warn("audit event failed")
	}
}
