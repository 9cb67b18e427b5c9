package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	master := []byte("dev_secret_change_me")

	daily, err := Derive(master, PurposeDaily)
	require.NoError(t, err)
	assert.Len(t, daily, Size)

	again, err := Derive(master, PurposeDaily)
	require.NoError(t, err)
	assert.Equal(t, daily, again)

	challenge, err := Derive(master, PurposeChallenge)
	require.NoError(t, err)
	assert.NotEqual(t, daily, challenge)

	other, err := Derive([]byte("another secret"), PurposeDaily)
	require.NoError(t, err)
	assert.NotEqual(t, daily, other)
}

func TestDerive_EmptySecret(t *testing.T) {
	_, err := Derive(nil, PurposeDaily)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
