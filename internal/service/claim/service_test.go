package claim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward_wheel/internal/model"
	"reward_wheel/pkg/token"
)

type claimConfig struct{ ttl time.Duration }

func (claimConfig) SecretKey() []byte         { return []byte("claims") }
func (c claimConfig) TokenTTL() time.Duration { return c.ttl }

func issue(t *testing.T, claim model.Claim, ttl time.Duration) string {
	t.Helper()
	tok, err := token.GenerateClaimToken(claim, claimConfig{}.SecretKey(), ttl)
	require.NoError(t, err)
	return tok
}

func TestVerify(t *testing.T) {
	s := NewClaimService(claimConfig{ttl: time.Hour})

	code, err := token.RedemptionCode("spin-1", claimConfig{}.SecretKey())
	require.NoError(t, err)
	tok := issue(t, model.Claim{SpinID: "spin-1", WheelID: 4, Participant: "alice", Reward: "Cake", RedemptionCode: code}, time.Hour)

	claim, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "Cake", claim.Reward)
	assert.Equal(t, "alice", claim.Participant)
	assert.Equal(t, int64(4), claim.WheelID)
}

func TestVerify_Rejects(t *testing.T) {
	s := NewClaimService(claimConfig{ttl: time.Hour})
	ctx := context.Background()

	_, err := s.Verify(ctx, " ")
	assert.ErrorIs(t, err, model.ErrInvalidClaim)

	_, err = s.Verify(ctx, "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidClaim)

	code, err := token.RedemptionCode("spin-1", claimConfig{}.SecretKey())
	require.NoError(t, err)
	expired := issue(t, model.Claim{SpinID: "spin-1", RedemptionCode: code}, -time.Minute)
	_, err = s.Verify(ctx, expired)
	assert.ErrorIs(t, err, model.ErrInvalidClaim)

	// Code issued for another spin.
	forged := issue(t, model.Claim{SpinID: "spin-2", RedemptionCode: code}, time.Hour)
	_, err = s.Verify(ctx, forged)
	assert.ErrorIs(t, err, model.ErrInvalidClaim)
}
