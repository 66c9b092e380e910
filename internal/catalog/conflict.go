package catalog

import "gorm.io/gorm/clause"

// onConflictDoNothing mirrors ON CONFLICT (codeType, normalizedValue) DO
// NOTHING from spec.md §4.3; the unique index itself is named
// idx_identifier_code in internal/models.
func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}
