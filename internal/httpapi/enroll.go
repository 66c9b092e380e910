package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/models"
)

type deviceMetaRequest struct {
	Label        string `json:"label"`
	DeviceType   string `json:"deviceType"`
	PrintingMode string `json:"printingMode"`
	AppVersion   string `json:"appVersion"`
}

type enrollRequest struct {
	Code       string            `json:"code" binding:"required"`
	DeviceMeta deviceMetaRequest `json:"deviceMeta"`
}

type enrollResponse struct {
	DeviceID    string `json:"deviceId"`
	StoreID     string `json:"storeId"`
	DeviceToken string `json:"deviceToken"`
	StoreActive bool   `json:"storeActive"`
}

// handleEnroll binds a device to a store via a single-use enrollment code,
// per spec.md §4.2/§3. Re-enrolling an existing device under the same label
// is permitted even if the code has since expired or already been used —
// only a device that has never enrolled under that label requires a fresh,
// unexpired, unused code.
func (s *Server) handleEnroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code_required", "code is required")
		return
	}

	var resp *enrollResponse
	err := s.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var code models.DeviceEnrollmentCode
		err := tx.Where("code = ?", req.Code).First(&code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindValidation, "invalid_code", "enrollment code not found")
		}
		if err != nil {
			return err
		}

		existing, err := findDeviceByLabel(tx, code.StoreID, req.DeviceMeta.Label)
		if err != nil {
			return err
		}

		if existing == nil {
			if err := requireUsableCode(code); err != nil {
				return err
			}
		}

		device, err := upsertDevice(tx, existing, code.StoreID, req)
		if err != nil {
			return err
		}

		if code.UsedAt == nil {
			now := time.Now().UTC()
			if err := tx.Model(&models.DeviceEnrollmentCode{}).
				Where("code = ?", code.Code).Update("used_at", &now).Error; err != nil {
				return err
			}
		}

		var store models.Store
		if err := tx.Where("id = ?", code.StoreID).First(&store).Error; err != nil {
			return err
		}

		resp = &enrollResponse{
			DeviceID:    device.ID,
			StoreID:     code.StoreID,
			DeviceToken: *device.DeviceToken,
			StoreActive: store.Active(),
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, resp)
}

// requireUsableCode enforces the single-use/unexpired rule for a device
// enrolling under a label seen for the first time.
func requireUsableCode(code models.DeviceEnrollmentCode) error {
	if code.UsedAt != nil {
		return apperror.New(apperror.KindConflict, "code_already_used", "enrollment code already used")
	}
	if time.Now().UTC().After(code.ExpiresAt) {
		return apperror.New(apperror.KindValidation, "code_expired", "enrollment code has expired")
	}
	return nil
}

func findDeviceByLabel(tx *gorm.DB, storeID, label string) (*models.PosDevice, error) {
	if label == "" {
		return nil, nil
	}
	var device models.PosDevice
	err := tx.Where("store_id = ? AND label = ?", storeID, label).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func upsertDevice(tx *gorm.DB, existing *models.PosDevice, storeID string, req enrollRequest) (*models.PosDevice, error) {
	token, err := generateDeviceToken()
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updates := map[string]interface{}{
			"device_token":  token,
			"active":        true,
			"device_type":   req.DeviceMeta.DeviceType,
			"printing_mode": req.DeviceMeta.PrintingMode,
			"app_version":   req.DeviceMeta.AppVersion,
		}
		if err := tx.Model(&models.PosDevice{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.DeviceToken = &token
		existing.Active = true
		return existing, nil
	}

	id := storeID
	device := models.PosDevice{
		StoreID:      &id,
		DeviceToken:  &token,
		Active:       true,
		Label:        req.DeviceMeta.Label,
		DeviceType:   req.DeviceMeta.DeviceType,
		PrintingMode: req.DeviceMeta.PrintingMode,
		AppVersion:   req.DeviceMeta.AppVersion,
	}
	if err := tx.Create(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func generateDeviceToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
