package logger

import (
	"encoding/json"
	"os"
	"runtime/debug"
	"sync"
	"time"
)

type Logger interface {
	Info(action, message string, details map[string]interface{})
	Debug(action, message string, details map[string]interface{})
	Error(action, message string, details map[string]interface{}, err error)
}

type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service"`
	Hostname  string                 `json:"hostname"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     *ErrorInfo             `json:"error,omitempty"`
}

type ErrorInfo struct {
	Msg   string `json:"msg"`
	Stack string `json:"stack,omitempty"`
}

type jsonLogger struct {
	service  string
	hostname string
	mu       sync.Mutex
}

func New(service string) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
	}
}

func (l *jsonLogger) Info(action, message string, details map[string]interface{}) {
	l.log("INFO", action, message, details, nil)
}

func (l *jsonLogger) Debug(action, message string, details map[string]interface{}) {
	l.log("DEBUG", action, message, details, nil)
}

func (l *jsonLogger) Error(action, message string, details map[string]interface{}, err error) {
	l.log("ERROR", action, message, details, err)
}

func (l *jsonLogger) log(level, action, message string, details map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{
			Msg:   err.Error(),
			Stack: string(debug.Stack()),
		}
	}

	json.NewEncoder(os.Stdout).Encode(entry)
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, map[string]interface{}, error) {}
