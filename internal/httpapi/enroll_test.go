package httpapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestRequireUsableCode_RejectsUsed(t *testing.T) {
	used := time.Now().UTC()
	code := models.DeviceEnrollmentCode{
		Code:      "ABC123",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		UsedAt:    &used,
	}
	err := requireUsableCode(code)
	assert.Error(t, err)
}

func TestRequireUsableCode_RejectsExpired(t *testing.T) {
	code := models.DeviceEnrollmentCode{
		Code:      "ABC123",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	err := requireUsableCode(code)
	assert.Error(t, err)
}

func TestRequireUsableCode_AcceptsFreshUnusedCode(t *testing.T) {
	code := models.DeviceEnrollmentCode{
		Code:      "ABC123",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	err := requireUsableCode(code)
	assert.NoError(t, err)
}
