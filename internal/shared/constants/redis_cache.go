package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the FlyViet application
// Pattern: flyviet:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for airline/route data
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for promotion catalogs
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // 4 hours - for flight schedules
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for flight details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for statistics
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for route summaries
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for booking lists
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for search results
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // 2 minutes - for seat counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "flyviet"
)

// ================== FLIGHTS MODULE ==================

// Flight Cache Keys
const (
	// Flight searches and listings
	CACHE_KEY_FLIGHTS_SEARCH = CACHE_PREFIX + ":flights:search" // + :route:X-Y:date:Z:class:C
	CACHE_KEY_FLIGHTS_LIST   = CACHE_PREFIX + ":flights:list"   // + :page:X:limit:Y:status:Z

	// Individual flight details
	CACHE_KEY_FLIGHT_DETAIL = CACHE_PREFIX + ":flights:detail:code:" // + flight-code
)

// Flight Cache TTLs
const (
	TTL_FLIGHT_SEARCH = TTL_DYNAMIC_SHORT      // 5 minutes
	TTL_FLIGHT_LIST   = TTL_DYNAMIC_MEDIUM     // 10 minutes
	TTL_FLIGHT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== DRAFTS MODULE ==================

// Booking drafts are the authoritative copy of in-progress bookings. They
// live only in Redis and expire with the shopping session.
const (
	CACHE_KEY_DRAFT = CACHE_PREFIX + ":drafts:token:" // + draft-token
)

// ================== PROMOTIONS MODULE ==================

// Promotion Cache Keys
const (
	CACHE_KEY_PROMOTIONS_ACTIVE = CACHE_PREFIX + ":promotions:active:all"
	CACHE_KEY_PROMOTION_BY_CODE = CACHE_PREFIX + ":promotions:detail:code:" // + promo-code
)

// Promotion Cache TTLs
const (
	TTL_PROMOTIONS_ACTIVE = TTL_SEMI_STATIC_QUICK // 15 minutes
	TTL_PROMOTION_DETAIL  = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:number:" // + booking-number
	CACHE_KEY_BOOKINGS_LIST  = CACHE_PREFIX + ":bookings:list"           // + :page:X:limit:Y:status:Z
	CACHE_KEY_IDEMPOTENCY    = CACHE_PREFIX + ":bookings:idempotency:"   // + idempotency-key
)

// Booking Cache TTLs
const (
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKINGS_LIST  = TTL_DYNAMIC_SHORT  // 5 minutes

	// Idempotency claims outlive any client retry window
	TTL_IDEMPOTENCY = 24 * time.Hour
)

// ================== STATISTICS MODULE ==================

// Statistics Cache Keys
const (
	CACHE_KEY_STATS_OVERVIEW       = CACHE_PREFIX + ":statistics:overview"
	CACHE_KEY_STATS_REVENUE_DAILY  = CACHE_PREFIX + ":statistics:revenue:daily:"  // + from:X:to:Y
	CACHE_KEY_STATS_BOOKINGS_DAILY = CACHE_PREFIX + ":statistics:bookings:daily:" // + from:X:to:Y
	CACHE_KEY_STATS_ROUTES         = CACHE_PREFIX + ":statistics:routes:popular"
)

// Statistics Cache TTLs
const (
	TTL_STATS_OVERVIEW = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_STATS_SERIES   = TTL_DYNAMIC_MEDIUM    // 10 minutes
	TTL_STATS_ROUTES   = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_ADMIN_PROFILE = CACHE_PREFIX + ":auth:admin:profile:uuid:" // + admin-id
)

// Auth Cache TTLs
const (
	TTL_ADMIN_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis SCAN-based invalidation)
const (
	// Flight-related invalidation patterns
	PATTERN_INVALIDATE_FLIGHTS_ALL   = CACHE_PREFIX + ":flights:*"
	PATTERN_INVALIDATE_FLIGHT_SEARCH = CACHE_PREFIX + ":flights:search*"

	// Promotion-related invalidation patterns
	PATTERN_INVALIDATE_PROMOTIONS_ALL = CACHE_PREFIX + ":promotions:*"

	// Booking-related invalidation patterns
	PATTERN_INVALIDATE_BOOKINGS_ALL = CACHE_PREFIX + ":bookings:detail:*"

	// Statistics invalidation patterns
	PATTERN_INVALIDATE_STATISTICS = CACHE_PREFIX + ":statistics:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildFlightSearchKey constructs the cache key for a search result page.
// Example: flyviet:flights:search:route:HAN-SGN:date:2026-01-15:class:ECONOMY
func BuildFlightSearchKey(origin, destination, date, seatClass string) string {
	return CACHE_KEY_FLIGHTS_SEARCH + ":route:" + origin + "-" + destination + ":date:" + date + ":class:" + seatClass
}

func BuildFlightListKey(page, limit int, status string) string {
	if status != "" {
		return CACHE_KEY_FLIGHTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit) + ":status:" + status
	}
	return CACHE_KEY_FLIGHTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildFlightDetailKey(flightCode string) string {
	return CACHE_KEY_FLIGHT_DETAIL + flightCode
}

func BuildDraftKey(token string) string {
	return CACHE_KEY_DRAFT + token
}

func BuildPromotionKey(code string) string {
	return CACHE_KEY_PROMOTION_BY_CODE + code
}

func BuildBookingDetailKey(bookingNumber string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingNumber
}

func BuildIdempotencyKey(key string) string {
	return CACHE_KEY_IDEMPOTENCY + key
}

func BuildRevenueSeriesKey(from, to string) string {
	return CACHE_KEY_STATS_REVENUE_DAILY + "from:" + from + ":to:" + to
}

func BuildBookingSeriesKey(from, to string) string {
	return CACHE_KEY_STATS_BOOKINGS_DAILY + "from:" + from + ":to:" + to
}
