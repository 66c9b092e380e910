package sync

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/purchase"
	"supermandi/pos-core/internal/sales"
)

// ApplyBatch runs every event in the batch, each inside its own per-event
// transaction so one rejected event never aborts the ones that follow it,
// per spec.md §4.7. The device's heartbeat is touched once at entry
// (lastSeenOnline, pendingOutboxCount) and once at exit (lastSyncAt).
func ApplyBatch(ctx context.Context, gdb *gorm.DB, storeID, deviceID string, pendingOutboxCount int, events []Event) (*BatchResult, error) {
	if err := touchHeartbeat(gdb, deviceID, pendingOutboxCount); err != nil {
		return nil, err
	}

	batch := &BatchResult{Results: make([]Result, 0, len(events))}
	for _, event := range events {
		result, saleMapping, collectionMapping := applyEvent(ctx, gdb, storeID, deviceID, event)
		batch.Results = append(batch.Results, result)
		if saleMapping != nil {
			batch.SaleMappings = append(batch.SaleMappings, *saleMapping)
		}
		if collectionMapping != nil {
			batch.CollectionMappings = append(batch.CollectionMappings, *collectionMapping)
		}
	}

	if err := touchLastSync(gdb, deviceID); err != nil {
		return nil, err
	}
	return batch, nil
}

func touchHeartbeat(gdb *gorm.DB, deviceID string, pendingOutboxCount int) error {
	now := time.Now().UTC()
	return gdb.Model(&models.PosDevice{}).Where("id = ?", deviceID).
		Updates(map[string]interface{}{"last_seen_online": &now, "pending_outbox_count": pendingOutboxCount}).Error
}

func touchLastSync(gdb *gorm.DB, deviceID string) error {
	now := time.Now().UTC()
	return gdb.Model(&models.PosDevice{}).Where("id = ?", deviceID).Update("last_sync_at", &now).Error
}

// requiresSerializable decides the transaction runner per spec.md §5: sale,
// payment, and purchase paths need SERIALIZABLE; catalog/collection writes
// rely on unique constraints + ON CONFLICT DO NOTHING instead.
func requiresSerializable(t EventType) bool {
	switch t {
	case EventSaleCreated, EventPaymentCash, EventPaymentDue, EventPurchaseSubmit, EventPurchaseCreated:
		return true
	default:
		return false
	}
}

// applyEvent runs one event's dedup-insert-then-dispatch inside one
// transaction, per spec.md §4.7's per-event algorithm. A transaction error
// rolls back and is reported as rejected; it never propagates to the caller,
// so the rest of the batch keeps processing.
func applyEvent(ctx context.Context, gdb *gorm.DB, storeID, deviceID string, event Event) (Result, *SaleMapping, *CollectionMapping) {
	runner := db.Default
	if requiresSerializable(event.Type) {
		runner = db.Serializable
	}

	var result Result
	var saleMapping *SaleMapping
	var collectionMapping *CollectionMapping

	txErr := runner(ctx, gdb, func(tx *gorm.DB) error {
		inserted, err := insertProcessedEvent(tx, event, storeID, deviceID)
		if err != nil {
			return err
		}
		if !inserted {
			result, saleMapping, collectionMapping = duplicateOutcome(tx, storeID, event)
			return nil
		}

		outcome, sm, cm, err := dispatch(tx, storeID, deviceID, event)
		if err != nil {
			return err
		}
		result, saleMapping, collectionMapping = outcome, sm, cm
		return nil
	})
	if txErr != nil {
		return Result{EventID: event.EventID, Status: statusRejected, Error: errorToken(txErr)}, nil, nil
	}
	return result, saleMapping, collectionMapping
}

// errorToken reduces a transaction error to the stable token a rejected
// event reports, falling back to "internal" for anything not already an
// *apperror.Error.
func errorToken(err error) string {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Token
	}
	return string(apperror.KindInternal)
}

func insertProcessedEvent(tx *gorm.DB, event Event, storeID, deviceID string) (bool, error) {
	row := models.ProcessedEvent{
		EventID:    event.EventID,
		DeviceID:   deviceID,
		StoreID:    storeID,
		EventType:  string(event.Type),
		ReceivedAt: time.Now().UTC(),
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return false, fmt.Errorf("insert processed event: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// duplicateOutcome handles an already-seen eventId: the write is skipped,
// but SALE_CREATED/COLLECTION_CREATED still report the mapping the device
// needs to reconcile its local id, by reading back what the first
// application produced.
func duplicateOutcome(tx *gorm.DB, storeID string, event Event) (Result, *SaleMapping, *CollectionMapping) {
	result := Result{EventID: event.EventID, Status: statusDuplicateIgnored}
	switch event.Type {
	case EventSaleCreated:
		if event.SaleID == "" {
			return result, nil, nil
		}
		var sale models.Sale
		if err := tx.Where("id = ? AND store_id = ?", event.SaleID, storeID).First(&sale).Error; err == nil {
			return result, &SaleMapping{EventID: event.EventID, SaleID: sale.ID}, nil
		}
	case EventCollectionCreated:
		if event.CollectionID == "" {
			return result, nil, nil
		}
		var collection models.Collection
		if err := tx.Where("id = ? AND store_id = ?", event.CollectionID, storeID).First(&collection).Error; err == nil {
			return result, nil, &CollectionMapping{EventID: event.EventID, CollectionID: collection.ID}
		}
	}
	return result, nil, nil
}

// dispatch routes a freshly-inserted event to its domain handler. Sale,
// payment, and purchase events reuse the "Tx" entry points their own
// packages expose precisely so they can run inside this already-open
// transaction instead of opening a second, nested one.
func dispatch(tx *gorm.DB, storeID, deviceID string, event Event) (Result, *SaleMapping, *CollectionMapping, error) {
	switch event.Type {
	case EventProductUpsert:
		if err := applyProductUpsert(tx, storeID, event); err != nil {
			return Result{}, nil, nil, err
		}
		return Result{EventID: event.EventID, Status: statusApplied}, nil, nil, nil

	case EventProductPriceSet:
		if err := applyProductPriceSet(tx, storeID, event); err != nil {
			return Result{}, nil, nil, err
		}
		return Result{EventID: event.EventID, Status: statusApplied}, nil, nil, nil

	case EventSaleCreated:
		mode := event.PaymentMode
		if mode == "" {
			mode = models.PaymentModeCash
		}
		res, err := sales.CreateOfflineSaleTx(tx, storeID, deviceID, event.Items, event.DiscountMinor, event.Currency, event.SaleID, event.OfflineReceiptRef, mode)
		if err != nil {
			return Result{}, nil, nil, err
		}
		return Result{EventID: event.EventID, Status: statusApplied}, &SaleMapping{EventID: event.EventID, SaleID: res.Sale.ID}, nil, nil

	case EventPaymentCash:
		return applyPayment(tx, storeID, event, models.PaymentModeCash)

	case EventPaymentDue:
		return applyPayment(tx, storeID, event, models.PaymentModeDue)

	case EventCollectionCreated:
		return applyCollection(tx, storeID, deviceID, event)

	case EventPurchaseSubmit, EventPurchaseCreated:
		if _, err := purchase.CreatePurchaseTx(tx, storeID, event.PurchaseItems, event.SupplierName, event.Currency, event.PurchaseID, true); err != nil {
			return Result{}, nil, nil, err
		}
		return Result{EventID: event.EventID, Status: statusApplied}, nil, nil, nil

	default:
		return Result{}, nil, nil, apperror.New(apperror.KindValidation, "invalid_item", fmt.Sprintf("unknown event type %q", event.Type))
	}
}

func applyPayment(tx *gorm.DB, storeID string, event Event, mode models.PaymentMode) (Result, *SaleMapping, *CollectionMapping, error) {
	if _, err := sales.ConfirmPaymentTx(tx, storeID, event.SaleID, mode); err != nil {
		return Result{}, nil, nil, err
	}
	return Result{EventID: event.EventID, Status: statusApplied}, nil, nil, nil
}

func applyCollection(tx *gorm.DB, storeID, deviceID string, event Event) (Result, *SaleMapping, *CollectionMapping, error) {
	status := models.PaymentStatusPaid
	if event.Mode == models.PaymentModeDue {
		status = models.PaymentStatusDue
	}

	collection := models.Collection{
		StoreID:     storeID,
		DeviceID:    deviceID,
		AmountMinor: event.AmountMinor,
		Mode:        event.Mode,
		Reference:   event.Reference,
		Status:      status,
	}
	if event.CollectionID != "" {
		collection.ID = event.CollectionID
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&collection).Error; err != nil {
		return Result{}, nil, nil, fmt.Errorf("create collection: %w", err)
	}

	return Result{EventID: event.EventID, Status: statusApplied}, nil, &CollectionMapping{EventID: event.EventID, CollectionID: collection.ID}, nil
}
