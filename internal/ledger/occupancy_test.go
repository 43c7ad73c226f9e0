package ledger_test

import (
	"testing"

	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestStaysByPerson() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice"})
	suite.createTestPerson(models.Person{Code: "P2", Name: "Bob"})

	// Two records for Alice, partially outside the window
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2023, 12, 28), EndDate: types.NewDay(2024, 1, 3), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 8), EndDate: types.NewDay(2024, 1, 12), PersonCount: 2})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 5), EndDate: types.NewDay(2024, 1, 7), PersonCount: 1})

	// Entirely outside the window
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 2, 1), EndDate: types.NewDay(2024, 2, 5), PersonCount: 1})

	occupancy, err := ledger.StaysByPerson(models.DB, types.NewDay(2024, 1, 1), types.NewDay(2024, 1, 10))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), occupancy, 2)

	// Alice: 3 days alone plus 3 days with a companion
	assert.Equal(suite.T(), ledger.Occupancy{Name: "Alice", Stays: 9}, occupancy["P1"])
	assert.Equal(suite.T(), ledger.Occupancy{Name: "Bob", Stays: 3}, occupancy["P2"])
}

func (suite *TestSuiteStandard) TestStaysByPersonEmpty() {
	occupancy, err := ledger.StaysByPerson(models.DB, types.NewDay(2024, 1, 1), types.NewDay(2024, 1, 10))
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), occupancy)
}

func (suite *TestSuiteStandard) TestSharesByStays() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice"})
	suite.createTestPerson(models.Person{Code: "P2", Name: "Bob"})

	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 3), PersonCount: 1})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 4), EndDate: types.NewDay(2024, 1, 4), PersonCount: 1})

	shares, err := ledger.SharesByStays(models.DB, types.NewDay(2024, 1, 1), types.NewDay(2024, 1, 10))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), shares, 2)

	assert.Equal(suite.T(), "0.75", shares["P1"].String())
	assert.Equal(suite.T(), "0.25", shares["P2"].String())
}

func (suite *TestSuiteStandard) TestDaysByPerson() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice"})

	// The person count does not matter for days
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 10), PersonCount: 4})

	tests := []struct {
		name string
		asOf types.Day
		days int
	}{
		{"Before the stay", types.NewDay(2023, 12, 31), 0},
		{"Mid-stay", types.NewDay(2024, 1, 6), 6},
		{"After the window", types.NewDay(2024, 2, 1), 10},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			days, err := ledger.DaysByPerson(models.DB, types.NewDay(2024, 1, 1), types.NewDay(2024, 1, 10), tt.asOf)
			require.Nil(t, err)
			assert.Equal(t, tt.days, days["P1"])
		})
	}
}
