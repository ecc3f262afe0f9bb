package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSeats(t *testing.T) {
	t.Run("should report free seats while capacity exceeds sold", func(t *testing.T) {
		assert.EqualValues(t, 500, availableSeats(500, 0))
		assert.EqualValues(t, 497, availableSeats(500, 3))
		assert.EqualValues(t, 1, availableSeats(500, 499))
	})

	t.Run("should report zero on a full journey", func(t *testing.T) {
		assert.EqualValues(t, 0, availableSeats(500, 500))
	})

	t.Run("should clamp at zero when the train shrank below its sold count", func(t *testing.T) {
		// A train updated to a 1x1 grid with 2 tickets already sold must
		// read as sold out, not as a wrapped-around uint32.
		assert.EqualValues(t, 0, availableSeats(1, 2))
		assert.EqualValues(t, 0, availableSeats(0, 5))
	})
}
