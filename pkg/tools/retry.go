package tools

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/advisorhub/mira/pkg/models"
	"github.com/advisorhub/mira/pkg/store"
)

// RetryConfig bounds the exponential backoff applied to transient failures.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig mirrors the production defaults: three attempts, 100ms
// initial delay doubling up to a 2s cap.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	d := DefaultRetryConfig()

	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}

	if c.InitialDelay <= 0 {
		c.InitialDelay = d.InitialDelay
	}

	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}

	if c.Multiplier <= 0 {
		c.Multiplier = d.Multiplier
	}

	return c
}

// WithRetry runs op, retrying with exponential backoff while the error
// categorizes as transient. Permanent errors and the final attempt's error
// return immediately.
func WithRetry(ctx context.Context, config RetryConfig, logger *slog.Logger, op func() (any, error)) (any, error) {
	config = config.withDefaults()

	var lastErr error

	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		data, err := op()
		if err == nil {
			return data, nil
		}

		lastErr = err

		if !CategorizeError(err).Retryable || attempt == config.MaxAttempts {
			return nil, err
		}

		wait := delay
		if wait > config.MaxDelay {
			wait = config.MaxDelay
		}

		logger.Debug("Retrying operation after transient failure",
			"attempt", attempt+1, "max_attempts", config.MaxAttempts, "delay", wait, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
	}

	return nil, lastErr
}

// CategorizeError maps an error onto a stable tool error code and decides
// whether it is worth retrying. Only connection, timeout, and network
// failures are transient; everything unrecognized fails closed as permanent.
func CategorizeError(err error) models.ToolError {
	switch {
	case errors.Is(err, store.ErrConnection):
		return models.ToolError{
			Code:      "database_connection_error",
			Message:   "Database connection failed. Please try again.",
			Details:   err.Error(),
			Retryable: true,
		}
	case errors.Is(err, store.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return models.ToolError{
			Code:      "database_timeout",
			Message:   "Database query timed out. Please try again.",
			Details:   err.Error(),
			Retryable: true,
		}
	case errors.Is(err, store.ErrNotFound):
		return models.ToolError{
			Code:    "not_found",
			Message: "The requested resource was not found.",
			Details: err.Error(),
		}
	case errors.Is(err, store.ErrForeignKey):
		return models.ToolError{
			Code:    "foreign_key_violation",
			Message: "Referenced resource does not exist.",
			Details: err.Error(),
		}
	case errors.Is(err, store.ErrDuplicate):
		return models.ToolError{
			Code:    "unique_violation",
			Message: "A record with this value already exists.",
			Details: err.Error(),
		}
	case errors.Is(err, store.ErrPermission):
		return models.ToolError{
			Code:    "permission_denied",
			Message: "Insufficient permissions to perform this operation.",
			Details: err.Error(),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return models.ToolError{
			Code:      "network_error",
			Message:   "Network request failed. Please check your connection and try again.",
			Details:   err.Error(),
			Retryable: true,
		}
	}

	return models.ToolError{
		Code:    "unknown_error",
		Message: err.Error(),
	}
}
