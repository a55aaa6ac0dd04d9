package cache_test

import (
	"testing"
	"time"

	"table-booking/internal/infra/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("0b8a4a1c-3e55-4a6e-9d1a-2f8f3d7e9c10")
	tokyo := time.FixedZone("JST", 9*3600)
	day := time.Date(2030, 6, 1, 0, 0, 0, 0, tokyo)

	assert.Equal(t, "availability:0b8a4a1c-3e55-4a6e-9d1a-2f8f3d7e9c10:2030-06-01", cache.Key(id, day))
	assert.Equal(t, "availability:0b8a4a1c-3e55-4a6e-9d1a-2f8f3d7e9c10:2030-05-31", cache.Key(id, day.UTC()),
		"the key follows the location of the day it is given")
}
