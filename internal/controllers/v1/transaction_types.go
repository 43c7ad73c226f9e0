package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
)

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/1"`      // The transaction itself
	Expense string `json:"expense,omitempty" example:"https://example.com/api/v1/expenses/100001"` // The expense the transaction belongs to, if any
}

// Transaction is the API representation of a ledger transaction.
//
// Charges and reconciliation adjustments are negative when the person
// owes money and positive for credits and refunds.
type Transaction struct {
	models.Model
	Date        types.Day              `json:"date" example:"2024-01-15"`
	Type        models.TransactionType `json:"type" example:"401 - Charge"`
	ExpenseID   *uint                  `json:"expenseId,omitempty" example:"100001"`
	ExpenseType string                 `json:"expenseType,omitempty" example:"UTIL"`
	Amount      decimal.Decimal        `json:"amount" example:"-33.33"`
	Person      string                 `json:"person" example:"Alice"`
	Account     string                 `json:"account" example:"DE02120300000000202051"`
	Note        string                 `json:"note,omitempty" example:"33.33% of 100.00 based on equal split between 3 owners."`
	Links       TransactionLinks       `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	links := TransactionLinks{
		Self: fmt.Sprintf("%s/v1/transactions/%d", url, model.ID),
	}

	if model.ExpenseID != nil {
		links.Expense = fmt.Sprintf("%s/v1/expenses/%d", url, *model.ExpenseID)
	}

	return Transaction{
		Model:       model.Model,
		Date:        model.Date,
		Type:        model.Type,
		ExpenseID:   model.ExpenseID,
		ExpenseType: model.ExpenseType,
		Amount:      model.Amount,
		Person:      model.Person,
		Account:     model.Account,
		Note:        model.Note,
		Links:       links,
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *Transaction `json:"data"`                                                       // The transaction
}

type TransactionListResponse struct {
	Error      *string       `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []Transaction `json:"data"`                                                       // List of transactions in ledger order
	Pagination *Pagination   `json:"pagination"`                                                 // Pagination information
}

// TransactionQueryFilter contains the fields transactions can be
// filtered with.
type TransactionQueryFilter struct {
	Person    string `form:"person" filterField:"false"`    // By person name, supports globbing
	Type      string `form:"type"`                          // By transaction type
	Expense   uint   `form:"expense" filterField:"false"`   // By expense ID
	FromDate  string `form:"fromDate" filterField:"false"`  // Only transactions on this day or later
	UntilDate string `form:"untilDate" filterField:"false"` // Only transactions on this day or earlier
	Offset    uint   `form:"offset" filterField:"false"`    // The offset of the first transaction returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		Type: models.TransactionType(f.Type),
	}
}
