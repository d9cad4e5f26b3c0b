package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-schedule-api/core/constants"
)

func TestLoad_LockDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultLockTTL, cfg.Lock.TTL)
	assert.Equal(t, constants.DefaultLockMaxAttempts, cfg.Lock.MaxAttempts)
	assert.Equal(t, constants.DefaultLockBackoffBase, cfg.Lock.BackoffBase)
}

func TestLoad_LockEnvOverrides(t *testing.T) {
	t.Setenv("LOCK_TTL", "45s")
	t.Setenv("LOCK_MAXATTEMPTS", "8")
	t.Setenv("LOCK_BACKOFFBASE", "100ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Lock.TTL)
	assert.Equal(t, 8, cfg.Lock.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Lock.BackoffBase)
}

func TestLoad_RejectsZeroLockAttempts(t *testing.T) {
	t.Setenv("LOCK_MAXATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)
}
