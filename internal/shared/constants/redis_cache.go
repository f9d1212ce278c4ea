package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and key patterns for the cinehall application.
// Pattern: cinehall:{module}:{operation}:{identifier}

const CachePrefix = "cinehall"

// ================== SESSIONS MODULE ==================

// SessionListingKey caches the public listing of sessions active on a
// given calendar day (no filters applied).
func SessionListingKey(date time.Time) string {
	return fmt.Sprintf("%s:sessions:listing:%s", CachePrefix, date.Format("2006-01-02"))
}

// PatternInvalidateSessionListings matches every cached daily listing.
// Any schedule mutation wipes them all; the ranges involved make a
// per-day invalidation not worth the bookkeeping.
const PatternInvalidateSessionListings = CachePrefix + ":sessions:listing:*"

// ================== SEATS MODULE ==================

// SeatMapKey caches the free/taken seat map for one session on one day.
func SeatMapKey(sessionID string, date time.Time) string {
	return fmt.Sprintf("%s:seats:map:%s:%s", CachePrefix, sessionID, date.Format("2006-01-02"))
}

// SeatMapInvalidationPattern matches every cached seat map of a session.
func SeatMapInvalidationPattern(sessionID string) string {
	return fmt.Sprintf("%s:seats:map:%s:*", CachePrefix, sessionID)
}
