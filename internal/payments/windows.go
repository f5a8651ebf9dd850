package payments

import (
	"context"
	"fmt"
	"time"

	"stagepass/internal/shared/config"
	"stagepass/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// Windows tracks the two independent checkout countdowns per booking as
// redis TTL keys: the payment window and the earlier seat-hold warning. A
// countdown has expired exactly when its key is gone, so restarts and
// crashed workers cannot resurrect a window.
type Windows struct {
	client        *redis.Client
	paymentWindow time.Duration
	holdWarning   time.Duration
}

func NewWindows(client *redis.Client, cfg config.BookingConfig) *Windows {
	return &Windows{
		client:        client,
		paymentWindow: cfg.PaymentWindow,
		holdWarning:   cfg.HoldWarning,
	}
}

// Arm starts both countdowns for a booking.
func (w *Windows) Arm(ctx context.Context, bookingID string) error {
	pipe := w.client.Pipeline()
	pipe.Set(ctx, constants.BuildPaymentWindowKey(bookingID), 1, w.paymentWindow)
	pipe.Set(ctx, constants.BuildHoldWarningKey(bookingID), 1, w.holdWarning)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to arm payment countdowns: %w", err)
	}
	return nil
}

// remaining returns the countdown left on a key. A missing key reports zero
// remaining and expired true.
func (w *Windows) remaining(ctx context.Context, key string) (time.Duration, bool, error) {
	ttl, err := w.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read countdown: %w", err)
	}
	// TTL returns -2 for a missing key and -1 for a key without expiry.
	if ttl < 0 {
		return 0, true, nil
	}
	return ttl, false, nil
}

// PaymentRemaining returns the time left in the payment window.
func (w *Windows) PaymentRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error) {
	return w.remaining(ctx, constants.BuildPaymentWindowKey(bookingID))
}

// HoldWarningRemaining returns the time left before the seat-hold warning.
func (w *Windows) HoldWarningRemaining(ctx context.Context, bookingID string) (time.Duration, bool, error) {
	return w.remaining(ctx, constants.BuildHoldWarningKey(bookingID))
}

// Disarm clears both countdowns, used once a payment reaches a terminal
// state.
func (w *Windows) Disarm(ctx context.Context, bookingID string) error {
	return w.client.Del(ctx,
		constants.BuildPaymentWindowKey(bookingID),
		constants.BuildHoldWarningKey(bookingID),
	).Err()
}
