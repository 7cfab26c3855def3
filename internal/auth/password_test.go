package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.Error(t, ComparePassword(hash, "hunter23"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, HashCost(0))
	assert.Equal(t, bcrypt.DefaultCost, HashCost(bcrypt.MinCost-1))
	assert.Equal(t, bcrypt.DefaultCost, HashCost(bcrypt.MaxCost+1))
	assert.Equal(t, 12, HashCost(12))
}

func TestPasswordLengthLimit(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost)
	require.NoError(t, err)
	assert.Error(t, ComparePassword(hash, strings.Repeat("a", MaxPasswordBytes)+"b"))
}
