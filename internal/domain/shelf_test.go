package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShelvesPlace_Exclusive(t *testing.T) {
	var shelves Shelves
	now := time.Now()

	shelves.Place("OL1W", ShelfWantToRead, now)
	assert.Equal(t, ShelfWantToRead, shelves.StatusOf("OL1W"))
	assert.Equal(t, 1, shelves.Count())

	// Moving to another shelf removes the previous placement.
	shelves.Place("OL1W", ShelfOngoing, now)
	assert.Equal(t, ShelfOngoing, shelves.StatusOf("OL1W"))
	assert.Equal(t, 1, shelves.Count())
	assert.Empty(t, shelves.WantToRead)

	shelves.Place("OL1W", ShelfCompleted, now)
	assert.Equal(t, ShelfCompleted, shelves.StatusOf("OL1W"))
	assert.Equal(t, 1, shelves.Count())
}

func TestShelvesPlace_RepeatIsIdempotent(t *testing.T) {
	var shelves Shelves
	now := time.Now()

	shelves.Place("OL1W", ShelfOngoing, now)
	shelves.Place("OL1W", ShelfOngoing, now.Add(time.Minute))

	assert.Equal(t, 1, shelves.Count())
	assert.Equal(t, ShelfOngoing, shelves.StatusOf("OL1W"))
}

func TestShelvesPlace_Remove(t *testing.T) {
	var shelves Shelves
	now := time.Now()

	shelves.Place("OL1W", ShelfCompleted, now)
	shelves.Place("OL1W", ShelfRemove, now)

	assert.Zero(t, shelves.Count())
	assert.Equal(t, ShelfStatus(""), shelves.StatusOf("OL1W"))
}

func TestShelvesRemove(t *testing.T) {
	var shelves Shelves
	now := time.Now()

	shelves.Place("OL1W", ShelfOngoing, now)
	shelves.Place("OL2W", ShelfCompleted, now)

	assert.True(t, shelves.Remove("OL1W"))
	assert.False(t, shelves.Remove("OL1W"), "removing an unshelved book is a no-op")
	assert.Equal(t, 1, shelves.Count())
	assert.Equal(t, ShelfCompleted, shelves.StatusOf("OL2W"))
}

func TestShelfStatusValid(t *testing.T) {
	assert.True(t, ShelfWantToRead.Valid())
	assert.True(t, ShelfOngoing.Valid())
	assert.True(t, ShelfCompleted.Valid())
	assert.True(t, ShelfRemove.Valid())
	assert.False(t, ShelfStatus("reading").Valid())
	assert.False(t, ShelfStatus("").Valid())
}
