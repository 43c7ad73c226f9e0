package models

import (
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/types"
	"gorm.io/gorm"
)

// OwnershipSet is a point-in-time ownership split of the house. A set
// supersedes all earlier sets from its date forward.
type OwnershipSet struct {
	Model
	Date types.Day `json:"date"`
}

// OwnershipShare is one owner's share within an ownership set.
type OwnershipShare struct {
	Model
	OwnershipSetID uint            `json:"ownershipSetId"`
	OwnershipSet   OwnershipSet    `json:"-"`
	Owner          string          `json:"owner"` // Display name of the owner
	Percentage     decimal.Decimal `json:"percentage" gorm:"type:DECIMAL(20,8)"`
}

func (o *OwnershipSet) BeforeCreate(tx *gorm.DB) error {
	if o.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &OwnershipSet{}, 100001)
	if err != nil {
		return err
	}

	o.ID = id
	return nil
}

func (o *OwnershipShare) BeforeCreate(tx *gorm.DB) error {
	err := o.checkIntegrity(tx)
	if err != nil {
		return err
	}

	if o.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &OwnershipShare{}, 100001)
	if err != nil {
		return err
	}

	o.ID = id
	return nil
}

// checkIntegrity verifies references to other resources
func (o *OwnershipShare) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&OwnershipSet{}, o.OwnershipSetID).Error
}

// ApplicableOwnershipSet returns the ownership set in effect on a day:
// the set with the latest date at or before the day. When two sets share
// that date, the one with the highest ID wins.
func ApplicableOwnershipSet(db *gorm.DB, day types.Day) (OwnershipSet, error) {
	var set OwnershipSet

	err := db.
		Where("date(date) <= date(?)", day).
		Order("date DESC, id DESC").
		First(&set).Error
	if err != nil {
		return OwnershipSet{}, err
	}

	return set, nil
}

// Shares returns the ownership shares of the set, in row order.
func (o OwnershipSet) Shares(db *gorm.DB) ([]OwnershipShare, error) {
	var shares []OwnershipShare

	err := db.
		Where(&OwnershipShare{OwnershipSetID: o.ID}).
		Order("id ASC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}

	return shares, nil
}
