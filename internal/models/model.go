package models

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Model is the base model for all other models in the ledger.
type Model struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Model) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// nextID returns the ID to assign to the next row of a table.
//
// IDs are contiguous and increasing per table. An empty table starts at a
// table specific seed so that IDs from different tables are easy to tell
// apart in notes and exports.
func nextID(tx *gorm.DB, model any, seed uint) (uint, error) {
	var max sql.NullInt64

	err := tx.Model(model).Select("MAX(id)").Row().Scan(&max)
	if err != nil {
		return 0, err
	}

	if !max.Valid {
		return seed, nil
	}

	return uint(max.Int64) + 1, nil
}
