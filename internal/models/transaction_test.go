package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionIDSeed() {
	id, err := models.NextTransactionID(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), uint(1), id)

	transaction := suite.createTestTransaction(models.Transaction{
		Date:   types.NewDay(2024, 1, 1),
		Type:   models.TransactionDeposit,
		Amount: decimal.NewFromFloat(100),
		Person: "Alice",
	})
	assert.Equal(suite.T(), uint(1), transaction.ID)

	id, err = models.NextTransactionID(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), uint(2), id)
}

func (suite *TestSuiteStandard) TestOrderedTransactions() {
	// Insert out of date order, the ledger order is established on read
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 3, 1), Type: models.TransactionDeposit, Amount: decimal.NewFromFloat(1), Person: "Alice"})
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 1), Type: models.TransactionDeposit, Amount: decimal.NewFromFloat(2), Person: "Bob"})
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 1), Type: models.TransactionDeposit, Amount: decimal.NewFromFloat(3), Person: "Carol"})

	var transactions []models.Transaction
	require.Nil(suite.T(), models.OrderedTransactions(models.DB).Find(&transactions).Error)
	require.Len(suite.T(), transactions, 3)

	// Same date resolves by insertion order
	assert.Equal(suite.T(), "Bob", transactions[0].Person)
	assert.Equal(suite.T(), "Carol", transactions[1].Person)
	assert.Equal(suite.T(), "Alice", transactions[2].Person)
}

func (suite *TestSuiteStandard) TestTransactionsForExpense() {
	expense := suite.createTestExpense(models.Expense{
		Date:            types.NewDay(2024, 1, 1),
		Type:            "UTIL",
		Amount:          decimal.NewFromFloat(100),
		SplitMethodType: models.SplitTypeEqual,
	})

	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 1), Type: models.TransactionCharge, ExpenseID: &expense.ID, Amount: decimal.NewFromFloat(-50), Person: "Alice"})
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 1), Type: models.TransactionDeposit, Amount: decimal.NewFromFloat(100), Person: "Bob"})

	transactions, err := models.TransactionsForExpense(models.DB, expense.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), "Alice", transactions[0].Person)
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Date:   types.NewDay(2024, 1, 1),
		Type:   models.TransactionDeposit,
		Amount: decimal.NewFromFloat(1),
		Person: " Alice ",
		Note:   "\tinitial deposit  ",
	})

	assert.Equal(suite.T(), "Alice", transaction.Person)
	assert.Equal(suite.T(), "initial deposit", transaction.Note)
}
