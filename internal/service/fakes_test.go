package service

import (
	"testing"
	"time"
	_ "time/tzdata"

	"saathi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock(t *testing.T) *Clock {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return FixedClock(time.Date(2025, 4, 3, 18, 33, 0, 0, time.UTC), loc)
}

func assertKind(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, models.KindOf(err), "unexpected error: %v", err)
}

func ptr[T any](v T) *T { return &v }
