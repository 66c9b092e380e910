package catalog

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/models"
)

const (
	smBarcodePrefix     = "SM"
	smBarcodeHexLength  = 12
	maxBarcodeCollision = 5
)

var hexAlphabet = []byte("0123456789ABCDEF")

// generateSMBarcode draws a random "SM"+12-upper-hex barcode, retrying on a
// primary-key collision up to maxBarcodeCollision times, per spec.md §4.3.
func generateSMBarcode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxBarcodeCollision; attempt++ {
		candidate, err := randomSMBarcode()
		if err != nil {
			return "", err
		}

		var existing models.Barcode
		err = tx.Where("barcode = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check barcode collision: %w", err)
		}
		// collision: loop and retry
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique SM barcode", maxBarcodeCollision)
}

func randomSMBarcode() (string, error) {
	raw := make([]byte, smBarcodeHexLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(smBarcodePrefix)
	for _, b := range raw {
		sb.WriteByte(hexAlphabet[int(b)%len(hexAlphabet)])
	}
	return sb.String(), nil
}

// AssignSMBarcode generates a fresh SM barcode and links it to variantID.
func AssignSMBarcode(tx *gorm.DB, variantID string) (string, error) {
	code, err := generateSMBarcode(tx)
	if err != nil {
		return "", err
	}
	barcode := models.Barcode{Barcode: code, VariantID: variantID, BarcodeType: models.BarcodeTypeSupermandi}
	if err := tx.Create(&barcode).Error; err != nil {
		return "", fmt.Errorf("create barcode: %w", err)
	}
	return code, nil
}
