package paramex

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
)

// LogException logs an exception with structured fields using a zap logger.
// The fields are flat so log aggregation systems can index them:
//   - error.code: 102
//   - error.category: 256
//   - error.type: "OrderError"
//   - error.message: "order A-17 rejected: oversized"
//   - error.var.orderId: "A-17" (one field per named variable)
//   - error.var.0: ... (one field per indexed variable)
//
// If the error is not an Exception, it falls back to standard error logging.
func LogException(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil {
		return
	}

	var ex *Exception
	if !errors.As(err, &ex) {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Int("error.code", ex.ErrorCode()),
		zap.Int("error.category", ex.Category()),
		zap.String("error.type", ex.ExceptionType().Name()),
		zap.String("error.message", ex.Message()),
		zap.Error(err),
	}
	for i, value := range ex.IndexedVariables() {
		fields = append(fields, zap.Any(fmt.Sprintf("error.var.%d", i), value))
	}
	for key, value := range ex.NamedVariables() {
		fields = append(fields, zap.Any("error.var."+key, value))
	}
	if cause := ex.Cause(); cause != nil {
		fields = append(fields, zap.NamedError("error.cause", cause))
	}
	logger.Error(msg, fields...)
}

// LogExceptionTo is the logr flavor of LogException, for hosts whose logging
// is built on logr sinks rather than zap.
func LogExceptionTo(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}

	var ex *Exception
	if !errors.As(err, &ex) {
		logger.Error(err, msg)
		return
	}

	keysAndValues := []any{
		"error.code", ex.ErrorCode(),
		"error.category", ex.Category(),
		"error.type", ex.ExceptionType().Name(),
		"error.message", ex.Message(),
	}
	for i, value := range ex.IndexedVariables() {
		keysAndValues = append(keysAndValues, fmt.Sprintf("error.var.%d", i), value)
	}
	for key, value := range ex.NamedVariables() {
		keysAndValues = append(keysAndValues, "error.var."+key, value)
	}
	if cause := ex.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, "error.cause", cause.Error())
	}
	logger.Error(err, msg, keysAndValues...)
}
