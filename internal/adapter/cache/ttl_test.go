package cache_test

import (
	"testing"
	"time"

	"github.com/kohai/gamecredit/internal/adapter/cache"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestVerificationCache(t *testing.T) {
	c := cache.NewVerificationCache(50*time.Millisecond, 10)

	_, ok := c.Get("sig")
	assert.False(t, ok)

	c.Set(&domain.VerificationRecord{Signature: "sig", Status: domain.VerificationVerified, Confirmations: 1})

	rec, ok := c.Get("sig")
	assert.True(t, ok)
	assert.Equal(t, domain.VerificationVerified, rec.Status)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("sig")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
