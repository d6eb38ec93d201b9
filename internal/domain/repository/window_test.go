package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWindow(t *testing.T) {
	assert.Equal(t, Window24h, NormalizeWindow(""))
	assert.Equal(t, Window1h, NormalizeWindow("1h"))
	assert.Equal(t, Window7d, NormalizeWindow("7d"))
	assert.Equal(t, Window24h, NormalizeWindow("30m"))
	assert.Equal(t, Window24h, NormalizeWindow("garbage"))
}

func TestWindowDuration(t *testing.T) {
	assert.Equal(t, time.Hour, Window1h.Duration())
	assert.Equal(t, 24*time.Hour, Window24h.Duration())
	assert.Equal(t, 7*24*time.Hour, Window7d.Duration())
}

func TestIsValidWindow(t *testing.T) {
	assert.True(t, IsValidWindow(Window1h))
	assert.False(t, IsValidWindow(Window("2h")))
}
