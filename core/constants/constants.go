package constants

import "time"

// Request handling
const (
	DefaultRequestTimeout = 10 * time.Second
)

// Database pool sizing
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis key namespaces for booking locks
const (
	RedisKeyLockRotation = "lock:rotation"
	RedisKeyLockSlot     = "lock:slot"
)

// Booking lock tuning
const (
	DefaultLockTTL         = 30 * time.Second
	DefaultLockMaxAttempts = 5
	DefaultLockBackoffBase = 50 * time.Millisecond
)

// Slot calculation
const (
	SlotGranularityMinutes = 15
)

// Scheduling defaults applied when a host has no explicit settings
const (
	DefaultMinimumNoticeHours  = 4
	DefaultBookingWindowDays   = 30
	DefaultBufferBeforeMinutes = 0
	DefaultBufferAfterMinutes  = 0
)

// Notification tasks
const (
	ReminderLeadTime = 24 * time.Hour
)
