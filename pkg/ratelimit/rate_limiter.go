package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stagepass/internal/shared/constants"
)

// RateLimitType classifies routes into limit buckets.
type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeBooking RateLimitType = "booking"
	RateLimitTypePayment RateLimitType = "payment"
	RateLimitTypeAdmin   RateLimitType = "admin"
)

// Config holds per-bucket request limits for a fixed window.
type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	BookingRequests int           `json:"booking_requests"`
	PaymentRequests int           `json:"payment_requests"`
	AdminRequests   int           `json:"admin_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Result represents a rate limit check result.
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis.
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

func (rl *RateLimiter) limitFor(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return rl.config.PublicRequests
	case RateLimitTypeBooking:
		return rl.config.BookingRequests
	case RateLimitTypePayment:
		return rl.config.PaymentRequests
	case RateLimitTypeAdmin:
		return rl.config.AdminRequests
	default:
		return rl.config.DefaultRequests
	}
}

func (rl *RateLimiter) isWhitelisted(ip string) bool {
	for _, whitelisted := range rl.config.WhitelistedIPs {
		if whitelisted == ip {
			return true
		}
	}
	return false
}

// Check counts the request against the caller's fixed window and reports
// whether it is allowed. Redis failures fail open so a cache outage never
// blocks traffic.
func (rl *RateLimiter) Check(ctx context.Context, ip string, limitType RateLimitType) (*Result, error) {
	limit := rl.limitFor(limitType)
	window := rl.config.WindowDuration
	resetTime := time.Now().Add(window).Unix()

	if !rl.config.Enabled || rl.isWhitelisted(ip) {
		return &Result{Allowed: true, Limit: limit, Remaining: limit, ResetTime: resetTime}, nil
	}

	key := fmt.Sprintf("%s%s:%s", constants.KEY_RATELIMIT, limitType, ip)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return &Result{Allowed: true, Limit: limit, Remaining: limit, ResetTime: resetTime}, err
	}

	count := int(incr.Val())
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}, nil
}
