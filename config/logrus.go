package config

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
	}
	return logrusInstance
}

// PrintLogInfo records the outcome of one handler call.
func PrintLogInfo(requestID string, statusCode int, functionName string) {
	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"request_id": requestID,
		"handler":    functionName,
		"status":     statusCode,
	})

	switch {
	case statusCode >= http.StatusInternalServerError:
		entry.Error(http.StatusText(statusCode))
	case statusCode >= http.StatusBadRequest:
		entry.Warn(http.StatusText(statusCode))
	default:
		entry.Info(http.StatusText(statusCode))
	}
}
