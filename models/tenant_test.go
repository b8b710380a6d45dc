package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTenantStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, TenantStatusActive, DeriveTenantStatus(now.AddDate(0, 6, 0), now))
	assert.Equal(t, TenantStatusExpiring, DeriveTenantStatus(now.AddDate(0, 0, 20), now))
	assert.Equal(t, TenantStatusEnded, DeriveTenantStatus(now.AddDate(0, 0, -1), now))
}
