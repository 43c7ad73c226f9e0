package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
)

// ExpenseEditable represents all values for an expense that can be set
// by the API. The status is managed by the charge engine and cannot be
// set directly.
type ExpenseEditable struct {
	Date          types.Day       `json:"date" example:"2024-01-15"`
	Type          string          `json:"type" example:"UTIL"`            // Expense category code
	Amount        decimal.Decimal `json:"amount" example:"100.00"`        // Must be larger than zero
	SplitMethodID uint            `json:"splitMethodId" example:"101"`    // The split method used for charging
	StartDate     *types.Day      `json:"startDate" example:"2024-01-01"` // First day of the covered period
	EndDate       *types.Day      `json:"endDate" example:"2024-01-31"`   // Last day of the covered period, inclusive
	Note          string          `json:"note" example:"Electricity Q1"`
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		Date:          editable.Date,
		Type:          editable.Type,
		Amount:        editable.Amount,
		SplitMethodID: editable.SplitMethodID,
		StartDate:     editable.StartDate,
		EndDate:       editable.EndDate,
		Note:          editable.Note,
	}
}

type ExpenseLinks struct {
	Self               string `json:"self" example:"https://example.com/api/v1/expenses/100001"`                      // The expense itself
	Charges            string `json:"charges" example:"https://example.com/api/v1/expenses/100001/charges"`          // Create or delete the charges of the expense
	ProvisionalCharges string `json:"provisionalCharges" example:"https://example.com/api/v1/expenses/100001/provisional-charges"` // Create provisional charges
	Reconciliation     string `json:"reconciliation" example:"https://example.com/api/v1/expenses/100001/reconciliation"`          // Reconcile the expense group
	Transactions       string `json:"transactions" example:"https://example.com/api/v1/transactions?expense=100001"`  // The transactions of the expense
}

// Expense is the API representation of an expense.
type Expense struct {
	models.Model
	ExpenseEditable
	SplitMethodType        models.SplitType `json:"splitMethodType" example:"1"`              // Denormalized from the split method
	Status                 string           `json:"status" example:"Provisionally Charged"`   // The lifecycle status
	LastReconciliationDate *types.Day       `json:"lastReconciliationDate,omitempty"`         // Day of the last reconciliation run
	Links                  ExpenseLinks     `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	self := fmt.Sprintf("%s/v1/expenses/%d", url, model.ID)

	return Expense{
		Model: model.Model,
		ExpenseEditable: ExpenseEditable{
			Date:          model.Date,
			Type:          model.Type,
			Amount:        model.Amount,
			SplitMethodID: model.SplitMethodID,
			StartDate:     model.StartDate,
			EndDate:       model.EndDate,
			Note:          model.Note,
		},
		SplitMethodType:        model.SplitMethodType,
		Status:                 model.Status.String(),
		LastReconciliationDate: model.LastReconciliationDate,
		Links: ExpenseLinks{
			Self:               self,
			Charges:            self + "/charges",
			ProvisionalCharges: self + "/provisional-charges",
			Reconciliation:     self + "/reconciliation",
			Transactions:       fmt.Sprintf("%s/v1/transactions?expense=%d", url, model.ID),
		},
	}
}

type ExpenseResponse struct {
	Error *string  `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *Expense `json:"data"`                                                       // The expense
}

type ExpenseListResponse struct {
	Error      *string     `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []Expense   `json:"data"`                                                       // List of expenses
	Pagination *Pagination `json:"pagination"`                                                 // Pagination information
}

type ExpenseCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []ExpenseResponse `json:"data"`                                                       // List of created expenses
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// ExpenseQueryFilter contains the fields expenses can be filtered with.
type ExpenseQueryFilter struct {
	Type   string `form:"type" filterField:"false"`   // By expense type, supports globbing
	Status string `form:"status" filterField:"false"` // By lifecycle status
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first expense returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of expenses to return. Defaults to 50.
}

// ChargesResponse is the response of the charge creating endpoints.
type ChargesResponse struct {
	Error *string       `json:"error" example:"cannot process the request: unsupported split method type 9"` // The error, if one occurred
	Data  []Transaction `json:"data"`                                                                       // The created charge transactions, in resolver order
}

type ChargesDeleted struct {
	Deleted int `json:"deleted" example:"3"` // Number of removed transactions, 0 when there was nothing to delete
}

type ChargesDeleteResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *ChargesDeleted `json:"data"`                                                       // The deletion result
}

// Reconciliation is the API representation of a reconciliation run.
type Reconciliation struct {
	ExpenseIDs   []uint          `json:"expenseIds" example:"100001,100002"` // The reconciled expense group
	TotalCost    decimal.Decimal `json:"totalCost" example:"500"`            // Sum of the group's expense amounts
	Adjustments  []Transaction   `json:"adjustments"`                        // The created adjustment transactions
	ReconciledOn types.Day       `json:"reconciledOn" example:"2024-02-01"`  // The day the run happened
}

func newReconciliation(c *gin.Context, result *ledger.ReconciliationResult) Reconciliation {
	adjustments := make([]Transaction, 0, len(result.Adjustments))
	for _, transaction := range result.Adjustments {
		adjustments = append(adjustments, newTransaction(c, transaction))
	}

	return Reconciliation{
		ExpenseIDs:   result.ExpenseIDs,
		TotalCost:    result.TotalCost,
		Adjustments:  adjustments,
		ReconciledOn: result.ReconciledOn,
	}
}

type ReconciliationResponse struct {
	Error *string         `json:"error" example:"cannot process the request: start and end date must be set for reconciliation"` // The error, if one occurred
	Data  *Reconciliation `json:"data"`                                                                                         // The reconciliation result
}
