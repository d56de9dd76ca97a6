// Package audit records admin operations to a rotating JSON-lines file.
package audit

import (
	"encoding/json"
	"log"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger appends one JSON record per admin operation. Rotation is handled
// by lumberjack based on size and age.
type Logger struct {
	logger *log.Logger
}

// NewLogger creates an audit logger writing to logPath.
func NewLogger(logPath string) *Logger {
	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    50, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	}

	return &Logger{
		logger: log.New(writer, "", 0), // records carry their own timestamp
	}
}

// LogAdminAction records one admin operation, successful or failed.
func (a *Logger) LogAdminAction(action, sourceIP string, fields map[string]interface{}, err error) {
	record := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"action":    action,
		"source_ip": sourceIP,
		"result":    "success",
	}
	for k, v := range fields {
		record[k] = v
	}
	if err != nil {
		record["result"] = "failed"
		record["error_message"] = err.Error()
	}

	data, _ := json.Marshal(record)
	a.logger.Println(string(data))
}
