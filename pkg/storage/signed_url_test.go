package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("secret", time.Hour)

	token, expires, err := signer.Sign("reports/schedule.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expires.After(time.Now()))

	name, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "reports/schedule.csv", name)
}

func TestSignerRejectsTamperedToken(t *testing.T) {
	signer := NewSigner("secret", time.Hour)

	token, _, err := signer.Sign("schedule.json")
	require.NoError(t, err)

	_, err = signer.Verify(token + "x")
	assert.Error(t, err)
}

func TestSignerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewSigner("one", time.Hour).Sign("schedule.json")
	require.NoError(t, err)

	_, err = NewSigner("two", time.Hour).Verify(token)
	assert.Error(t, err)
}
