package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// today returns the current day. It is a variable so tests can pin it.
var today = types.Today

// Occupancy is one person's aggregated presence in a date window.
type Occupancy struct {
	Name  string // Display name from the stay records
	Stays int    // Person-nights: overlap days times person count
}

// overlappingStays returns all stay records touching [start, end].
func overlappingStays(db *gorm.DB, start, end types.Day) ([]models.OvernightStay, error) {
	var stays []models.OvernightStay

	err := db.
		Where("date(start_date) <= date(?) AND date(end_date) >= date(?)", end, start).
		Order("id ASC").
		Find(&stays).Error
	if err != nil {
		return nil, err
	}

	return stays, nil
}

// StaysByPerson aggregates person-nights per person code for a window.
// The overlap of each stay record with the window counts, multiplied by
// the record's person count.
func StaysByPerson(db *gorm.DB, start, end types.Day) (map[string]Occupancy, error) {
	stays, err := overlappingStays(db, start, end)
	if err != nil {
		return nil, err
	}

	occupancy := make(map[string]Occupancy)

	for _, stay := range stays {
		overlapStart := types.Latest(stay.StartDate, start)
		overlapEnd := types.Earliest(stay.EndDate, end)

		overlapDays := overlapStart.DaysUntil(overlapEnd) + 1
		if overlapDays <= 0 {
			continue
		}

		entry := occupancy[stay.PersonCode]
		entry.Name = stay.PersonName
		entry.Stays += overlapDays * stay.PersonCount
		occupancy[stay.PersonCode] = entry
	}

	return occupancy, nil
}

// SharesByStays computes each person's share fraction of a window from
// person-nights. The map is empty when there are no stays.
func SharesByStays(db *gorm.DB, start, end types.Day) (map[string]decimal.Decimal, error) {
	occupancy, err := StaysByPerson(db, start, end)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, entry := range occupancy {
		total += entry.Stays
	}

	shares := make(map[string]decimal.Decimal, len(occupancy))
	if total == 0 {
		return shares, nil
	}

	totalDec := decimal.NewFromInt(int64(total))
	for code, entry := range occupancy {
		shares[code] = decimal.NewFromInt(int64(entry.Stays)).Div(totalDec)
	}

	return shares, nil
}

// DaysByPerson aggregates overlap days per person code for a window,
// capped at asOf. Days are independent of the person count: a stay of a
// family of four contributes the same days as a single person.
func DaysByPerson(db *gorm.DB, start, end, asOf types.Day) (map[string]int, error) {
	stays, err := overlappingStays(db, start, end)
	if err != nil {
		return nil, err
	}

	days := make(map[string]int)

	for _, stay := range stays {
		overlapStart := types.Latest(stay.StartDate, start)
		overlapEnd := types.Earliest(stay.EndDate, types.Earliest(end, asOf))

		overlapDays := overlapStart.DaysUntil(overlapEnd) + 1
		if overlapEnd.Before(overlapStart) || overlapDays <= 0 {
			continue
		}

		days[stay.PersonCode] += overlapDays
	}

	return days, nil
}

// sortedKeys returns the keys of a map in ascending order. Engine
// iteration order has to be deterministic because the last person in
// order absorbs the rounding remainder.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	return keys
}
