package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, ageFromDOB("1996-08-29", now))
	assert.Equal(t, 29, ageFromDOB("1996-08-30", now))
	assert.Equal(t, 30, ageFromDOB("1996-01-15", now))
	assert.Equal(t, 0, ageFromDOB("2026-08-29", now))

	assert.Equal(t, 0, ageFromDOB("", now))
	assert.Equal(t, 0, ageFromDOB("29/08/1996", now))
	assert.Equal(t, 0, ageFromDOB("2030-01-01", now))
}
