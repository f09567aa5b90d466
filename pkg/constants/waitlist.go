package constants

import "time"

// Waitlist route and wire messages shared by the endpoint and the submission client.
const (
	WaitlistPath = "/api/waitlist"

	WaitlistJoinedMessage       = "Added to waitlist!"
	WaitlistInvalidEmailMessage = "Invalid email address"
	WaitlistDuplicateMessage    = "Email already registered"
	WaitlistFailureMessage      = "Failed to join waitlist"
	WaitlistNetworkErrorMessage = "Network error. Please try again."
)

// WaitlistConfirmationWindow is how long the client shows the confirmed state before
// returning to idle.
const WaitlistConfirmationWindow = 3 * time.Second

// Backends selectable through WAITLIST_STORE.
const (
	WaitlistStoreDatabase = "database"
	WaitlistStoreRedis    = "redis"

	// WaitlistRedisKey is the hash holding email -> created_at when the Redis store is used.
	WaitlistRedisKey = "waitlist:entries"
)
