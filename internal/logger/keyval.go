package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// KeyvalLogger adapts the global zap logger to libraries that log through
// Log(keyvals...) in go-kit style
type KeyvalLogger struct {
	logger *zap.Logger
}

// NewKeyvalLogger returns a keyval logger writing through l, or the global logger when l is nil
func NewKeyvalLogger(l *zap.Logger) *KeyvalLogger {
	if l == nil {
		l = Default()
	}
	return &KeyvalLogger{logger: l}
}

// Log writes one entry. The "level" key selects the zap level and the
// "message"/"msg" key becomes the entry message; other pairs become fields.
func (k *KeyvalLogger) Log(keyvals ...interface{}) error {
	level := "info"
	msg := ""
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for _, f := range KeyvalsToFields(keyvals...) {
		switch f.Key {
		case "level":
			level = fieldString(f)
		case "message", "msg":
			msg = fieldString(f)
		default:
			fields = append(fields, f)
		}
	}

	switch level {
	case "debug":
		k.logger.Debug(msg, fields...)
	case "warn", "warning":
		k.logger.Warn(msg, fields...)
	case "error":
		k.logger.Error(msg, fields...)
	default:
		k.logger.Info(msg, fields...)
	}
	return nil
}

// KeyvalsToFields converts key1, val1, key2, val2... into zap fields.
// A trailing key without a value and non-string keys are dropped.
func KeyvalsToFields(keyvals ...interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}

	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}

func fieldString(f zap.Field) string {
	if f.String != "" {
		return f.String
	}
	if f.Interface != nil {
		return fmt.Sprint(f.Interface)
	}
	return ""
}
