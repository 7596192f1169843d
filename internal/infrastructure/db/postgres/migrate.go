package postgres

import "gorm.io/gorm"

// AutoMigrate creates or updates the full fixed schema. Nullable columns are
// declared explicitly, so no runtime column probing is ever needed.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&BorrowRequestModel{},
		&LoanModel{},
		&IdempotencyRecordModel{},
	)
}
