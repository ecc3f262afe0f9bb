package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpk6432/train-station-api/internal/utils"
)

func TestHashPassword(t *testing.T) {
	t.Run("should verify a round-tripped password", func(t *testing.T) {
		hash, err := utils.HashPassword("tr4in-s3cret", 4)
		require.NoError(t, err)
		assert.True(t, utils.VerifyPassword(hash, "tr4in-s3cret"))
		assert.False(t, utils.VerifyPassword(hash, "wrong"))
	})

	t.Run("should clamp an out-of-range cost instead of failing", func(t *testing.T) {
		hash, err := utils.HashPassword("tr4in-s3cret", 99)
		require.NoError(t, err)
		assert.True(t, utils.VerifyPassword(hash, "tr4in-s3cret"))
	})
}
