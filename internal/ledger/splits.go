package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"gorm.io/gorm"
)

// Share is one participant of a resolved split.
type Share struct {
	Person   string          // Display name, used on the transaction
	Code     string          // Person code when the strategy knows it
	Fraction decimal.Decimal // Fraction of the expense amount, fractions sum to 1
	Stays    int             // Person-nights behind an occupancy share
}

// SplitResolution is the outcome of resolving an expense against its
// split method: the ordered participant list plus the context the charge
// notes are built from.
type SplitResolution struct {
	Shares     []Share
	TotalStays int                 // Total person-nights, set for occupancy splits
	Custom     *models.CustomSplit // Parsed payload, set for custom splits
}

var (
	errNoOwnershipSet = errors.New("no ownership set found")
	errNoOwners       = errors.New("no owners found")
	errNoStays        = errors.New("no overnight stays found")
	errNoSplitJSON    = errors.New("no JSON found for custom split")
)

var hundred = decimal.NewFromInt(100)

// ResolveSplits produces the ordered list of (person, fraction) pairs
// for an expense according to its split method. The order is stable:
// ownership shares by row ID, occupancy shares by person code, custom
// shares as listed in the payload.
func ResolveSplits(db *gorm.DB, expense models.Expense) (SplitResolution, error) {
	switch expense.SplitMethodType {
	case models.SplitTypeEqual, models.SplitTypeOwnership:
		return resolveOwnershipSplits(db, expense)
	case models.SplitTypeOccupancy:
		return resolveOccupancySplits(db, expense)
	case models.SplitTypeCustom:
		return resolveCustomSplits(db, expense)
	}

	return SplitResolution{}, fmt.Errorf("%w: unsupported split method type %d", ErrValidation, expense.SplitMethodType)
}

// resolveOwnershipSplits covers the equal and ownership strategies. Both
// draw their participants from the ownership set in effect on the
// expense date.
func resolveOwnershipSplits(db *gorm.DB, expense models.Expense) (SplitResolution, error) {
	set, err := models.ApplicableOwnershipSet(db, expense.Date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
			return SplitResolution{}, fmt.Errorf("%w: %s", ErrNotFound, errNoOwnershipSet)
		}
		return SplitResolution{}, err
	}

	ownerShares, err := set.Shares(db)
	if err != nil {
		return SplitResolution{}, err
	}

	if len(ownerShares) == 0 {
		return SplitResolution{}, fmt.Errorf("%w: %s", ErrNotFound, errNoOwners)
	}

	if expense.SplitMethodType == models.SplitTypeOwnership {
		total := decimal.Zero
		for _, share := range ownerShares {
			total = total.Add(share.Percentage)
		}

		if !total.Equal(hundred) {
			return SplitResolution{}, fmt.Errorf("%w: ownership percentages do not sum to 100%% (current: %s%%)", ErrValidation, total)
		}
	}

	count := decimal.NewFromInt(int64(len(ownerShares)))
	shares := make([]Share, 0, len(ownerShares))

	for _, ownerShare := range ownerShares {
		fraction := ownerShare.Percentage.Div(hundred)
		if expense.SplitMethodType == models.SplitTypeEqual {
			fraction = decimal.NewFromInt(1).Div(count)
		}

		shares = append(shares, Share{
			Person:   ownerShare.Owner,
			Fraction: fraction,
		})
	}

	return SplitResolution{Shares: shares}, nil
}

func resolveOccupancySplits(db *gorm.DB, expense models.Expense) (SplitResolution, error) {
	start, end, ok := expense.Period()
	if !ok {
		return SplitResolution{}, fmt.Errorf("%w: occupancy splits need a start and end date", ErrValidation)
	}

	occupancy, err := StaysByPerson(db, start, end)
	if err != nil {
		return SplitResolution{}, err
	}

	total := 0
	for _, entry := range occupancy {
		total += entry.Stays
	}

	if total == 0 {
		return SplitResolution{}, fmt.Errorf("%w: %s", ErrNotFound, errNoStays)
	}

	totalDec := decimal.NewFromInt(int64(total))
	shares := make([]Share, 0, len(occupancy))

	for _, code := range sortedKeys(occupancy) {
		entry := occupancy[code]
		shares = append(shares, Share{
			Person:   entry.Name,
			Code:     code,
			Fraction: decimal.NewFromInt(int64(entry.Stays)).Div(totalDec),
			Stays:    entry.Stays,
		})
	}

	return SplitResolution{Shares: shares, TotalStays: total}, nil
}

func resolveCustomSplits(db *gorm.DB, expense models.Expense) (SplitResolution, error) {
	var method models.SplitMethod

	err := db.First(&method, expense.SplitMethodID).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return SplitResolution{}, fmt.Errorf("%w: split method %d", ErrNotFound, expense.SplitMethodID)
		}
		return SplitResolution{}, err
	}

	if method.JSON == "" {
		return SplitResolution{}, fmt.Errorf("%w: %s", ErrNotFound, errNoSplitJSON)
	}

	custom, err := method.CustomSplit()
	if err != nil {
		return SplitResolution{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	shares := make([]Share, 0, len(custom.Splits))

	switch custom.Type {
	case models.CustomSplitPercentage:
		for _, split := range custom.Splits {
			shares = append(shares, Share{
				Person:   models.PersonNameByCode(db, split.PID),
				Code:     split.PID,
				Fraction: split.Pct.Div(hundred),
			})
		}

	case models.CustomSplitFixed:
		total := decimal.Zero
		for _, split := range custom.Splits {
			total = total.Add(split.Amt)
		}

		if total.IsZero() {
			return SplitResolution{}, fmt.Errorf("%w: the fixed amounts of the custom split sum to zero", ErrValidation)
		}

		for _, split := range custom.Splits {
			shares = append(shares, Share{
				Person:   models.PersonNameByCode(db, split.PID),
				Code:     split.PID,
				Fraction: split.Amt.Div(total),
			})
		}

	case models.CustomSplitWeights:
		total := decimal.Zero
		for _, split := range custom.Splits {
			total = total.Add(split.Weight)
		}

		if total.IsZero() {
			return SplitResolution{}, fmt.Errorf("%w: the weights of the custom split sum to zero", ErrValidation)
		}

		for _, split := range custom.Splits {
			shares = append(shares, Share{
				Person:   models.PersonNameByCode(db, split.PID),
				Code:     split.PID,
				Fraction: split.Weight.Div(total),
			})
		}
	}

	return SplitResolution{Shares: shares, Custom: &custom}, nil
}
