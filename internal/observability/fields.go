package observability

import (
	"fmt"

	"go.uber.org/zap"
)

// String constructs a field with the given key and value.
func String(key, value string) zap.Field { return zap.String(key, value) }

// Int constructs a field with the given key and value.
func Int(key string, value int) zap.Field { return zap.Int(key, value) }

// Bool constructs a field with the given key and value.
func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

// Error constructs a field that carries err under the "error" key.
func Error(err error) zap.Field { return zap.Error(err) }

// Stringer constructs a field whose value is rendered with String.
func Stringer(key string, value fmt.Stringer) zap.Field { return zap.Stringer(key, value) }

// Any constructs a field from an arbitrary value.
func Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }
