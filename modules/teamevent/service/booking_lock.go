package service

import (
	"context"
	"time"

	"team-schedule-api/core/cache"
	"team-schedule-api/core/constants"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/utils"

	"github.com/google/uuid"
)

// LockKey is a structured lock identifier: namespace plus entity id plus an
// optional qualifier. Building keys through this type keeps different
// features from colliding in the shared cache.
type LockKey struct {
	Namespace string
	EntityID  string
	Qualifier string
}

func (k LockKey) String() string {
	s := k.Namespace + ":" + k.EntityID
	if k.Qualifier != "" {
		s += ":" + k.Qualifier
	}
	return s
}

// RotationLockKey guards the round-robin counter of one team event type.
func RotationLockKey(teamEventTypeID uuid.UUID) LockKey {
	return LockKey{
		Namespace: constants.RedisKeyLockRotation,
		EntityID:  teamEventTypeID.String(),
	}
}

// SlotLockKey guards one slot instant of one team event type.
func SlotLockKey(teamEventTypeID uuid.UUID, start time.Time) LockKey {
	return LockKey{
		Namespace: constants.RedisKeyLockSlot,
		EntityID:  teamEventTypeID.String(),
		Qualifier: start.UTC().Format(time.RFC3339),
	}
}

// BookingLock is a cache-backed advisory lock. The TTL is a safety net
// against a crashed holder, not a correctness guarantee: after a crash the
// key self-expires and the lock is reclaimable.
type BookingLock struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewBookingLock(c cache.Cache, ttl time.Duration) *BookingLock {
	if ttl <= 0 {
		ttl = constants.DefaultLockTTL
	}
	return &BookingLock{cache: c, ttl: ttl}
}

// Acquire is non-blocking. It returns the owner token on success and
// acquired=false when the key is already held. After the SetNX write it
// re-reads the key and verifies the stored token, closing the race where
// two acquirers both believe they won.
func (l *BookingLock) Acquire(ctx context.Context, key LockKey) (token string, acquired bool, err error) {
	token = utils.NewLockToken()

	ok, err := l.cache.SetNX(ctx, key.String(), token, l.ttl)
	if err != nil {
		logger.Error("BookingLock:Acquire:SetNX", err, "key", key.String())
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	stored, exists, err := l.cache.Get(ctx, key.String())
	if err != nil {
		logger.Error("BookingLock:Acquire:Confirm", err, "key", key.String())
		return "", false, err
	}
	if !exists || stored != token {
		logger.Warn("BookingLock:Acquire:ConfirmMismatch", "key", key.String())
		return "", false, nil
	}

	return token, true, nil
}

// Release deletes the key only while it is still owned by token; a lock that
// already expired and was re-acquired by someone else is left alone.
func (l *BookingLock) Release(ctx context.Context, key LockKey, token string) error {
	stored, exists, err := l.cache.Get(ctx, key.String())
	if err != nil {
		logger.Error("BookingLock:Release:Get", err, "key", key.String())
		return err
	}
	if !exists || stored != token {
		return nil
	}
	if err := l.cache.Del(ctx, key.String()); err != nil {
		logger.Error("BookingLock:Release:Del", err, "key", key.String())
		return err
	}
	return nil
}
