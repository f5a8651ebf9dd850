package constants

import "time"

// Redis keys and TTL values used across the application.
// Pattern: stagepass:{module}:{operation}:{identifier}

const CACHE_PREFIX = "stagepass"

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_CATEGORY_LIST   = 1 * time.Hour   // catalog changes rarely
	TTL_CATEGORY_DETAIL = 1 * time.Hour   // per-name price lookups
	TTL_EVENT_DETAIL    = 2 * time.Hour   // events are read-only input here
	TTL_LAYOUT          = 5 * time.Minute // seat availability is dynamic
)

// ================== SEAT CATEGORIES ==================

const (
	CACHE_KEY_CATEGORY_LIST   = CACHE_PREFIX + ":categories:list"
	CACHE_KEY_CATEGORY_BYNAME = CACHE_PREFIX + ":categories:name:" // + category name

	PATTERN_INVALIDATE_CATEGORIES = CACHE_PREFIX + ":categories:*"
)

// ================== SEAT LAYOUTS ==================

const (
	CACHE_KEY_LAYOUT = CACHE_PREFIX + ":layouts:event:" // + event-id
)

// BuildLayoutKey builds the cache key for an event's seat layout.
func BuildLayoutKey(eventID string) string {
	return CACHE_KEY_LAYOUT + eventID
}

// ================== BOOKING SESSIONS ==================

const (
	KEY_BOOKING_SESSION = CACHE_PREFIX + ":bookings:session:" // + session-id
)

// BuildSessionKey builds the redis key for a booking session document.
func BuildSessionKey(sessionID string) string {
	return KEY_BOOKING_SESSION + sessionID
}

// ================== PAYMENT COUNTDOWNS ==================

// Two independent countdowns per booking: the checkout payment window and
// the earlier seat-hold warning. Expiry is signalled by key disappearance.
const (
	KEY_PAYMENT_WINDOW = CACHE_PREFIX + ":payments:window:"  // + booking-id
	KEY_HOLD_WARNING   = CACHE_PREFIX + ":payments:warning:" // + booking-id
)

// BuildPaymentWindowKey builds the redis key for a booking's payment window.
func BuildPaymentWindowKey(bookingID string) string {
	return KEY_PAYMENT_WINDOW + bookingID
}

// BuildHoldWarningKey builds the redis key for a booking's seat-hold warning.
func BuildHoldWarningKey(bookingID string) string {
	return KEY_HOLD_WARNING + bookingID
}

// ================== RATE LIMITING ==================

const (
	KEY_RATELIMIT = CACHE_PREFIX + ":ratelimit:" // + class:ip
)
