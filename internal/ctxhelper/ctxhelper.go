// Package ctxhelper provides helper functions for working with the context
package ctxhelper

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/flash"
)

var (
	// KeyLogger is the context key for storing the logger in the context
	KeyLogger = ctxKey("logger")
	// KeyNotice is the context key for the flash notice that has been sent with the current request
	KeyNotice = ctxKey("notice")
)

// internal context key
type ctxKey string

// WithLogger returns a copy of the context carrying the given logger
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// Logger returns the logger from the current context. If no logger is available, it panics
func Logger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(KeyLogger).(*logrus.Entry)
	if ok {
		return logger
	}
	panic("No logger in context")
}

// WithNotice returns a copy of the context carrying the given flash notice
func WithNotice(ctx context.Context, notice *flash.Notice) context.Context {
	return context.WithValue(ctx, KeyNotice, notice)
}

// Notice returns the flash notice sent with the current request or nil if there is none
func Notice(ctx context.Context) *flash.Notice {
	if notice, ok := ctx.Value(KeyNotice).(*flash.Notice); ok {
		return notice
	}
	return nil
}
