package kernel_test

import (
	"testing"
	"time"

	"localstore/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 7_000_000, time.FixedZone("IST", 5*3600+1800))
	clock := kernel.FixedClock{At: at}

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, "2024-03-09T08:35:06.007Z", kernel.Timestamp(clock.Now()))
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := kernel.SystemClock{}.Now()
	assert.False(t, now.Before(before))
}
