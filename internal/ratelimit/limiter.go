// Package ratelimit provides per-tool token bucket rate limiting for MCP tools.
package ratelimit

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ToolLimiters maps tool names to their rate limiters.
type ToolLimiters map[string]*rate.Limiter

// Every returns a limiter allowing n calls per interval after an initial
// burst.
func Every(n int, interval time.Duration, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval/time.Duration(n)), burst)
}

// NewToolLimiters creates the default set of per-tool rate limiters.
// Building a graph re-reads and re-tokenizes the document, so both tools
// are bounded.
func NewToolLimiters() ToolLimiters {
	return ToolLimiters{
		"cooccur_graph": Every(30, time.Minute, 5),  // 30/minute, burst 5
		"cooccur_stats": Every(60, time.Minute, 10), // 60/minute, burst 10
	}
}

// CheckLimit checks the rate limit for a given tool name.
// Returns nil if allowed, or an error if rate limited.
// Tools without a configured limiter are always allowed.
func CheckLimit(limiters ToolLimiters, toolName string) error {
	limiter, ok := limiters[toolName]
	if !ok {
		return nil
	}
	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s, please try again shortly", toolName)
	}
	return nil
}
