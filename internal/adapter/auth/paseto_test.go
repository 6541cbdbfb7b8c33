package auth_test

import (
	"testing"

	"github.com/kohai/gamecredit/internal/adapter/auth"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoToken(t *testing.T) {
	ts, err := auth.New(&config.Auth{})
	require.NoError(t, err)

	token, err := ts.CreateToken(&port.TokenPayload{UserID: 7, Wallet: "wallet"})
	require.NoError(t, err)

	payload, err := ts.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), payload.UserID)
	assert.Equal(t, "wallet", payload.Wallet)

	other, err := auth.New(nil)
	require.NoError(t, err)
	_, err = other.VerifyToken(token)
	assert.Equal(t, domain.ErrInvalidToken, err)
}

func TestPasetoToken_BadKey(t *testing.T) {
	_, err := auth.New(&config.Auth{TokenKey: "not-hex"})
	assert.Error(t, err)
}
