package httpapi

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/scan"
)

// smBarcodePattern mirrors internal/purchase and internal/sync's copy — the
// small duplication is cheaper than an import cycle through catalog.
var smBarcodePattern = regexp.MustCompile(`^SM[0-9A-F]{12}$`)

type scanResolveRequest struct {
	ScanValue string `json:"scanValue" binding:"required"`
	Mode      string `json:"mode" binding:"required"`
	Format    string `json:"format"`
}

type scanProductResponse struct {
	GlobalProductID    string  `json:"globalProductId"`
	GlobalName         string  `json:"globalName"`
	StoreDisplayName   string  `json:"storeDisplayName"`
	SellPriceMinor     *int64  `json:"sellPriceMinor,omitempty"`
	PurchasePriceMinor *int64  `json:"purchasePriceMinor,omitempty"`
	Unit               string  `json:"unit,omitempty"`
	VariantID          string  `json:"variantId,omitempty"`
	AvailableQty       int64   `json:"availableQty"`
	IsFirstTimeInStore bool    `json:"isFirstTimeInStore"`
}

type scanResolveResponse struct {
	Action                 models.ScanAction    `json:"action"`
	Product                *scanProductResponse `json:"product,omitempty"`
	ProductNotFoundForStore bool                `json:"product_not_found_for_store,omitempty"`
}

// handleScanResolve implements C1+C3's combined contract from spec.md §4.1/
// §4.3: normalize the raw scan, dedup it against the short advisory window,
// then resolve (SELL) or resolve-or-mint (DIGITISE) the product it names.
func (s *Server) handleScanResolve(c *gin.Context) {
	var req scanResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_scan", "scanValue and mode are required")
		return
	}

	mode := models.ScanMode(req.Mode)
	if mode != models.ScanModeSell && mode != models.ScanModeDigitise {
		badRequest(c, "invalid_scan", "mode must be SELL or DIGITISE")
		return
	}

	device := auth.FromContext(c)

	normalized := scan.Normalize(req.Format, req.ScanValue)
	if normalized == nil {
		badRequest(c, "invalid_scan", "scanValue could not be normalized")
		return
	}

	if s.Dedup != nil && s.Dedup.SeenRecently(device.StoreID, string(mode), req.ScanValue) {
		s.writeScanEvent(device, req.ScanValue, mode, models.ScanActionIgnored, nil)
		respondJSON(c, http.StatusOK, scanResolveResponse{Action: models.ScanActionIgnored})
		return
	}

	var resp scanResolveResponse
	var variantID *string
	err := db.Default(c.Request.Context(), s.DB, func(tx *gorm.DB) error {
		var err error
		resp, variantID, err = resolveScan(tx, device.StoreID, mode, normalized, req.ScanValue)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	s.writeScanEvent(device, req.ScanValue, mode, resp.Action, variantID)
	respondJSON(c, http.StatusOK, resp)
}

func resolveScan(tx *gorm.DB, storeID string, mode models.ScanMode, normalized *scan.Result, rawValue string) (scanResolveResponse, *string, error) {
	if mode == models.ScanModeDigitise {
		return resolveDigitise(tx, storeID, normalized, rawValue)
	}
	return resolveSell(tx, storeID, normalized, rawValue)
}

// resolveSell looks up an already-digitised barcode without minting a new
// one: an unknown code in SELL mode means the device must first digitise it.
func resolveSell(tx *gorm.DB, storeID string, normalized *scan.Result, rawValue string) (scanResolveResponse, *string, error) {
	var barcode models.Barcode
	err := tx.Where("barcode = ?", rawValue).First(&barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scanResolveResponse{Action: models.ScanActionPromptPrice, ProductNotFoundForStore: true}, nil, nil
	}
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	globalProductID, err := catalog.GlobalProductIDForVariant(tx, barcode.VariantID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	product, storeProduct, isFirstTime, err := loadOrMaterializeStoreProduct(tx, storeID, globalProductID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	availableQty, err := currentAvailableQty(tx, storeID, globalProductID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	variantID := barcode.VariantID
	sellPriceMinor, err := currentSellPrice(tx, storeID, variantID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	action := models.ScanActionPromptPrice
	if sellPriceMinor != nil {
		action = models.ScanActionAddToCart
	}

	return scanResolveResponse{
		Action: action,
		Product: &scanProductResponse{
			GlobalProductID:    globalProductID,
			GlobalName:         product.GlobalName,
			StoreDisplayName:   catalog.DisplayName(storeProduct, product.GlobalName),
			SellPriceMinor:     sellPriceMinor,
			PurchasePriceMinor: storeProduct.PurchasePriceMinor,
			Unit:               storeProduct.Unit,
			VariantID:          variantID,
			AvailableQty:       availableQty,
			IsFirstTimeInStore: isFirstTime,
		},
	}, &variantID, nil
}

// resolveDigitise resolves-or-mints the global product and a sellable
// variant for a freshly scanned code, per spec.md §4.3's digitisation path.
func resolveDigitise(tx *gorm.DB, storeID string, normalized *scan.Result, rawValue string) (scanResolveResponse, *string, error) {
	globalProduct, isNewGlobal, err := catalog.ResolveGlobalProduct(tx, normalized.CodeType, rawValue, normalized.NormalizedValue, "")
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	variant, variantIsNew, err := ensureVariantForBarcode(tx, globalProduct, rawValue)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	product, storeProduct, isFirstTime, err := loadOrMaterializeStoreProduct(tx, storeID, globalProduct.ID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	availableQty, err := currentAvailableQty(tx, storeID, globalProduct.ID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	action := models.ScanActionAlreadyDigitised
	if isNewGlobal || variantIsNew {
		action = models.ScanActionDigitised
	}

	sellPriceMinor, err := currentSellPrice(tx, storeID, variant.ID)
	if err != nil {
		return scanResolveResponse{}, nil, err
	}

	return scanResolveResponse{
		Action: action,
		Product: &scanProductResponse{
			GlobalProductID:    globalProduct.ID,
			GlobalName:         product.GlobalName,
			StoreDisplayName:   catalog.DisplayName(storeProduct, product.GlobalName),
			SellPriceMinor:     sellPriceMinor,
			PurchasePriceMinor: storeProduct.PurchasePriceMinor,
			Unit:               storeProduct.Unit,
			VariantID:          variant.ID,
			AvailableQty:       availableQty,
			IsFirstTimeInStore: isFirstTime,
		},
	}, &variant.ID, nil
}

func loadOrMaterializeStoreProduct(tx *gorm.DB, storeID, globalProductID string) (*models.GlobalProduct, *models.StoreProduct, bool, error) {
	var product models.GlobalProduct
	if err := tx.Where("id = ?", globalProductID).First(&product).Error; err != nil {
		return nil, nil, false, err
	}
	storeProduct, isFirstTime, err := catalog.EnsureStoreProduct(tx, storeID, globalProductID)
	if err != nil {
		return nil, nil, false, err
	}
	return &product, storeProduct, isFirstTime, nil
}

// currentSellPrice reads the store-specific price purchase.UpsertSellingPrice
// writes to RetailerVariant — a nil return means the variant has never been
// priced in this store.
func currentSellPrice(tx *gorm.DB, storeID, variantID string) (*int64, error) {
	var rv models.RetailerVariant
	err := tx.Where("store_id = ? AND variant_id = ?", storeID, variantID).First(&rv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rv.SellingPriceMinor, nil
}

func currentAvailableQty(tx *gorm.DB, storeID, globalProductID string) (int64, error) {
	var inv models.StoreInventory
	err := tx.Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return inv.AvailableQty, nil
}

// ensureVariantForBarcode finds the variant this global product already
// sells under, minting one on first sight with the scanned code linked to it
// and an SM barcode issued for it (the scanned code itself counts when it is
// already an SM code). The lookup mirrors internal/sync's
// resolveVariantForBarcode, duplicated here rather than imported since the
// HTTP surface shouldn't depend on the sync engine.
func ensureVariantForBarcode(tx *gorm.DB, globalProduct *models.GlobalProduct, rawValue string) (*models.Variant, bool, error) {
	product, err := catalog.EnsureProduct(tx, globalProduct.ID, globalProduct.GlobalName)
	if err != nil {
		return nil, false, err
	}

	var variant models.Variant
	err = tx.Where("product_id = ?", product.ID).First(&variant).Error
	if err == nil {
		return &variant, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	variant = models.Variant{ProductID: product.ID, Name: globalProduct.GlobalName, Currency: "INR"}
	if err := tx.Create(&variant).Error; err != nil {
		return nil, false, err
	}

	linkedSM := false
	var existingBarcode models.Barcode
	err = tx.Where("barcode = ?", rawValue).First(&existingBarcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		barcodeType := models.BarcodeTypeManufacturer
		if smBarcodePattern.MatchString(rawValue) {
			barcodeType = models.BarcodeTypeSupermandi
		}
		if err := tx.Create(&models.Barcode{Barcode: rawValue, VariantID: variant.ID, BarcodeType: barcodeType}).Error; err != nil {
			return nil, false, err
		}
		linkedSM = barcodeType == models.BarcodeTypeSupermandi
	} else if err != nil {
		return nil, false, err
	}
	if !linkedSM {
		if _, err := catalog.AssignSMBarcode(tx, variant.ID); err != nil {
			return nil, false, err
		}
	}

	return &variant, true, nil
}

// writeScanEvent persists the durable scan record spec.md §3 names, best
// effort: a failure here never blocks the response the device already has.
func (s *Server) writeScanEvent(device auth.Device, scanValue string, mode models.ScanMode, action models.ScanAction, variantID *string) {
	event := models.ScanEvent{
		StoreID:   device.StoreID,
		DeviceID:  &device.DeviceID,
		ScanValue: scanValue,
		Mode:      mode,
		Action:    action,
		VariantID: variantID,
	}
	if err := s.DB.Create(&event).Error; err != nil && s.Log != nil {
		s.Log.Warn("failed to persist scan event", zap.Error(err))
	}
}
