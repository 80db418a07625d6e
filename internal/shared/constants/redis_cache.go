package constants

import (
	"fmt"
	"time"
)

// Redis key layout for skybook
// Pattern: skybook:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Listing TTL comes from REDIS_CACHE_TTL; single flights are re-read on select
const (
	TTL_FLIGHT_DETAIL = 2 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "skybook"
)

// ================== SESSION / WIZARD ==================

const (
	CACHE_KEY_SESSION = CACHE_PREFIX + ":session:" // + session-id
	CACHE_KEY_WIZARD  = CACHE_PREFIX + ":wizard:"  // + session-id:snapshot
)

// ================== FLIGHTS MODULE ==================

const (
	CACHE_KEY_FLIGHTS_LIST  = CACHE_PREFIX + ":flights:list:"   // + strategy
	CACHE_KEY_FLIGHT_DETAIL = CACHE_PREFIX + ":flights:detail:" // + flight-id
	CACHE_PATTERN_FLIGHTS   = CACHE_PREFIX + ":flights:*"
)

// ================== ADMIN CONSOLES ==================

const (
	CACHE_KEY_ADMIN_BOOKINGS = CACHE_PREFIX + ":admin:bookings:" // + session-id
)

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit"
)

// ================== KEY BUILDERS ==================

func SessionKey(sessionID string) string {
	return CACHE_KEY_SESSION + sessionID
}

func WizardKey(sessionID, snapshot string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_WIZARD, sessionID, snapshot)
}

func FlightListKey(strategy string) string {
	return CACHE_KEY_FLIGHTS_LIST + strategy
}

func FlightDetailKey(flightID string) string {
	return CACHE_KEY_FLIGHT_DETAIL + flightID
}

func AdminBookingsKey(sessionID string) string {
	return CACHE_KEY_ADMIN_BOOKINGS + sessionID
}
