package utils

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
)

// RecoverFn is a function that handles a recovered panic
type RecoverFn func(r interface{}, stack []byte)

// SafeGo executes the given function in a goroutine with panic recovery.
// A nil onPanic logs the panic on the global logger.
func SafeGo(fn func(), onPanic RecoverFn) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				if onPanic != nil {
					onPanic(r, stack)
					return
				}
				logger.Log.Error("[panic] Recovered from panic in goroutine",
					zap.Any("panic", r),
					zap.ByteString("stack", stack),
				)
			}
		}()
		fn()
	}()
}

// RecoverWithLog must be deferred. It swallows a panic and logs it with the
// request-scoped logger.
func RecoverWithLog(ctx context.Context, operation string) {
	if r := recover(); r != nil {
		logger.FromContext(ctx).Error(fmt.Sprintf("[panic] Recovered from panic during %s", operation),
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
			zap.Time("recovery_time", Now()),
		)
	}
}

// WrapWithContextRecovery turns a panic inside fn into an error.
func WrapWithContextRecovery(fn func(ctx context.Context) error) func(ctx context.Context) (err error) {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(ctx).Error("[panic] Recovered from panic",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = fmt.Errorf("panic recovered: %v", r)
			}
		}()
		return fn(ctx)
	}
}
