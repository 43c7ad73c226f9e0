package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseAmountValidation() {
	err := models.DB.Create(&models.Expense{
		Date:            types.NewDay(2024, 1, 1),
		Type:            "UTIL",
		SplitMethodType: models.SplitTypeEqual,
	}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNotPositive)

	err = models.DB.Create(&models.Expense{
		Date:            types.NewDay(2024, 1, 1),
		Type:            "UTIL",
		Amount:          decimal.NewFromFloat(-10),
		SplitMethodType: models.SplitTypeEqual,
	}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrExpenseAmountNotPositive)
}

func (suite *TestSuiteStandard) TestExpensePeriod() {
	start := types.NewDay(2024, 1, 1)
	end := types.NewDay(2024, 1, 31)

	expense := models.Expense{StartDate: &start, EndDate: &end}
	gotStart, gotEnd, ok := expense.Period()
	assert.True(suite.T(), ok)
	assert.True(suite.T(), gotStart.Equal(start))
	assert.True(suite.T(), gotEnd.Equal(end))

	_, _, ok = models.Expense{StartDate: &start}.Period()
	assert.False(suite.T(), ok)

	_, _, ok = models.Expense{}.Period()
	assert.False(suite.T(), ok)
}

func (suite *TestSuiteStandard) TestExpenseIDSeed() {
	expense := suite.createTestExpense(models.Expense{
		Date:            types.NewDay(2024, 1, 1),
		Type:            "UTIL",
		Amount:          decimal.NewFromFloat(10),
		SplitMethodType: models.SplitTypeEqual,
	})

	assert.Equal(suite.T(), uint(100001), expense.ID)
}
