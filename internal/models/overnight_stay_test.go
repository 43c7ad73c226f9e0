package models_test

import (
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestOvernightStayValidation() {
	err := models.DB.Create(&models.OvernightStay{
		PersonCode:  "P1",
		StartDate:   types.NewDay(2024, 1, 10),
		EndDate:     types.NewDay(2024, 1, 5),
		PersonCount: 1,
	}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrStayDatesInverted)

	err = models.DB.Create(&models.OvernightStay{
		PersonCode:  "P1",
		StartDate:   types.NewDay(2024, 1, 5),
		EndDate:     types.NewDay(2024, 1, 10),
		PersonCount: 0,
	}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrStayPersonCountInvalid)
}

func (suite *TestSuiteStandard) TestOvernightStayFillsName() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice"})

	stay := suite.createTestOvernightStay(models.OvernightStay{
		PersonCode:  "P1",
		StartDate:   types.NewDay(2024, 1, 5),
		EndDate:     types.NewDay(2024, 1, 10),
		PersonCount: 1,
	})

	assert.Equal(suite.T(), "Alice", stay.PersonName)
	assert.Equal(suite.T(), uint(100001), stay.ID)

	// An explicit name is kept
	stay = suite.createTestOvernightStay(models.OvernightStay{
		PersonCode:  "P1",
		PersonName:  "Alice and family",
		StartDate:   types.NewDay(2024, 2, 1),
		EndDate:     types.NewDay(2024, 2, 3),
		PersonCount: 3,
	})

	assert.Equal(suite.T(), "Alice and family", stay.PersonName)
}

func (suite *TestSuiteStandard) TestOvernightStayCounts() {
	stay := models.OvernightStay{
		StartDate:   types.NewDay(2024, 1, 5),
		EndDate:     types.NewDay(2024, 1, 10),
		PersonCount: 2,
	}

	assert.Equal(suite.T(), 6, stay.Days())
	assert.Equal(suite.T(), 12, stay.Stays())

	oneDay := models.OvernightStay{
		StartDate:   types.NewDay(2024, 1, 5),
		EndDate:     types.NewDay(2024, 1, 5),
		PersonCount: 1,
	}

	assert.Equal(suite.T(), 1, oneDay.Days())
}
