package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes one JSON object per line.
type Logger struct {
	service   string
	requestID string
	debug     bool

	mu  *sync.Mutex
	out io.Writer
}

func New(service string) *Logger {
	return &Logger{service: service, debug: true, mu: &sync.Mutex{}, out: os.Stdout}
}

// WithOutput returns a copy writing to w.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	c := *l
	c.out, c.mu = w, &sync.Mutex{}
	return &c
}

// WithLevel returns a copy that drops DEBUG lines unless level is "debug".
// An empty level keeps the current setting.
func (l *Logger) WithLevel(level string) *Logger {
	c := *l
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
	case "debug":
		c.debug = true
	default:
		c.debug = false
	}
	return &c
}

// WithRequestID returns a copy stamping every line with id.
func (l *Logger) WithRequestID(id string) *Logger {
	c := *l
	c.requestID = id
	return &c
}

func (l *Logger) log(level, action, msg string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		"level":      level,
		"service":    l.service,
		"action":     action,
		"message":    msg,
		"hostname":   hostname(),
		"request_id": l.requestID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = map[string]any{"msg": err.Error(), "stack": fmt.Sprintf("%T", err)}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = json.NewEncoder(l.out).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any) { l.log("INFO", action, action, fields, nil) }

func (l *Logger) Debug(action string, fields map[string]any) {
	if l.debug {
		l.log("DEBUG", action, action, fields, nil)
	}
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }

type ctxKey struct{}

// NewContext returns ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or fallback.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return fallback
}
