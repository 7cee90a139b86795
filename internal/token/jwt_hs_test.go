package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSProvider_SignAndParse(t *testing.T) {
	p := NewHSProvider("secret", "shop-service", "shop-clients")
	uid := uuid.New()

	tok, exp, err := p.SignAccess(context.Background(), uid, "ROLE_ADMIN", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := p.ParseAndValidateAccess(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UserID)
	assert.Equal(t, "ROLE_ADMIN", claims.Role)
}

func TestHSProvider_Rejects(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	p := NewHSProvider("secret", "shop-service", "shop-clients")

	t.Run("wrong secret", func(t *testing.T) {
		other := NewHSProvider("other", "shop-service", "shop-clients")
		tok, _, err := other.SignAccess(ctx, uid, "ROLE_CUSTOMER", time.Hour)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := NewHSProvider("secret", "shop-service", "someone-else")
		tok, _, err := other.SignAccess(ctx, uid, "ROLE_CUSTOMER", time.Hour)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok, _, err := p.SignAccess(ctx, uid, "ROLE_CUSTOMER", -time.Minute)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(ctx, tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.ParseAndValidateAccess(ctx, "not-a-jwt")
		assert.Error(t, err)
	})
}
