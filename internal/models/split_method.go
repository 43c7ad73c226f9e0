package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitType selects the strategy used to apportion an expense.
type SplitType uint8

const (
	SplitTypeEqual     SplitType = 1 // Equal split between the applicable owners
	SplitTypeOwnership SplitType = 2 // Split by ownership percentage
	SplitTypeOccupancy SplitType = 3 // Split by overnight stays in the expense period
	SplitTypeCustom    SplitType = 4 // Split defined by a custom JSON payload
)

// Valid reports whether the split type is one of the supported strategies.
func (t SplitType) Valid() bool {
	return t >= SplitTypeEqual && t <= SplitTypeCustom
}

// SplitMethod is a configured way of splitting expenses. For custom
// methods, the JSON column holds the payload describing the split.
type SplitMethod struct {
	Model
	Type SplitType `json:"type"`
	Name string    `json:"name"`
	JSON string    `json:"json,omitempty"`
}

func (s *SplitMethod) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.JSON = strings.TrimSpace(s.JSON)

	if s.Type == SplitTypeCustom && s.JSON == "" {
		return ErrSplitMethodJSONRequired
	}

	return nil
}

func (s *SplitMethod) BeforeCreate(tx *gorm.DB) error {
	if s.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &SplitMethod{}, 101)
	if err != nil {
		return err
	}

	s.ID = id
	return nil
}

// Custom split sub-types.
const (
	CustomSplitPercentage = "percentage"
	CustomSplitFixed      = "fixed"
	CustomSplitWeights    = "weights"
)

// CustomSplit is the parsed payload of a custom split method.
//
// The payload is parsed and validated once at the store boundary and
// handed around as this struct, it is never re-parsed downstream.
type CustomSplit struct {
	Type   string             `json:"type"`
	Splits []CustomSplitShare `json:"splits"`
}

// CustomSplitShare is one participant of a custom split. Exactly one of
// Pct, Amt and Weight is meaningful, selected by the CustomSplit type.
type CustomSplitShare struct {
	PID    string          `json:"pid"`
	Pct    decimal.Decimal `json:"pct"`
	Amt    decimal.Decimal `json:"amt"`
	Weight decimal.Decimal `json:"w"`
}

// ParseCustomSplit parses and validates a custom split payload.
func ParseCustomSplit(payload string) (CustomSplit, error) {
	var split CustomSplit

	err := json.Unmarshal([]byte(payload), &split)
	if err != nil {
		return CustomSplit{}, fmt.Errorf("%w: %s", ErrCustomSplitInvalidJSON, err)
	}

	switch split.Type {
	case CustomSplitPercentage, CustomSplitFixed, CustomSplitWeights:
	default:
		return CustomSplit{}, fmt.Errorf("%w: %q", ErrCustomSplitUnknownType, split.Type)
	}

	if len(split.Splits) == 0 {
		return CustomSplit{}, ErrCustomSplitEmpty
	}

	return split, nil
}

// CustomSplit returns the parsed custom split payload of the method.
func (s SplitMethod) CustomSplit() (CustomSplit, error) {
	return ParseCustomSplit(s.JSON)
}
