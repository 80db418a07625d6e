package database

import (
	"skybook/internal/audit"

	"gorm.io/gorm"
)

// Migrate creates the audit ledger table. The BFF owns no other table; every
// booking entity lives in the REST backend.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&audit.AuditEntry{},
	)
}
