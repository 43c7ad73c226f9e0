package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterExpenseRoutes registers the routes for expenses and the charge
// engine with the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PATCH("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}

	// Charge engine
	{
		r.OPTIONS("/:id/charges", OptionsExpenseCharges)
		r.POST("/:id/charges", CreateExpenseCharges)
		r.DELETE("/:id/charges", DeleteExpenseCharges)

		r.OPTIONS("/:id/provisional-charges", OptionsExpenseProvisionalCharges)
		r.POST("/:id/provisional-charges", CreateExpenseProvisionalCharges)

		r.OPTIONS("/:id/reconciliation", OptionsExpenseReconciliation)
		r.POST("/:id/reconciliation", ReconcileExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Expense{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/charges [options]
func OptionsExpenseCharges(c *gin.Context) {
	if !expenseExists(c) {
		return
	}

	httputil.OptionsPostDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/provisional-charges [options]
func OptionsExpenseProvisionalCharges(c *gin.Context) {
	if !expenseExists(c) {
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/reconciliation [options]
func OptionsExpenseReconciliation(c *gin.Context) {
	if !expenseExists(c) {
		return
	}

	httputil.OptionsPost(c)
}

// expenseExists verifies the expense in the URI and writes the error
// response when it is missing.
func expenseExists(c *gin.Context) bool {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	err = models.DB.First(&models.Expense{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	return true
}

// @Summary		Create expenses
// @Description	Creates new expenses. The status of a new expense is always Pending.
// @Tags			Expenses
// @Produce		json
// @Success		201			{object}	ExpenseCreateResponse
// @Failure		400			{object}	ExpenseCreateResponse
// @Failure		500			{object}	ExpenseCreateResponse
// @Param			expenses	body		[]ExpenseEditable	true	"Expenses"
// @Router			/v1/expenses [post]
func CreateExpenses(c *gin.Context) {
	var editables []ExpenseEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := ExpenseCreateResponse{}

	for _, editable := range editables {
		expense := editable.model()

		// The split type of the referenced method is denormalized onto
		// the expense so that the engine never re-reads the method row
		// for anything but custom payloads
		if expense.SplitMethodID != 0 {
			var method models.SplitMethod
			err = models.DB.First(&method, expense.SplitMethodID).Error
			if err != nil {
				s = r.appendError(err, s)
				continue
			}

			expense.SplitMethodType = method.Type
		}

		err = models.DB.Create(&expense).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newExpense(c, expense)
		r.Data = append(r.Data, ExpenseResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get expenses
// @Description	Returns a list of expenses
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	ExpenseListResponse
// @Failure		500	{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			type	query	string	false	"Filter by expense type, supports globbing"
// @Param			status	query	string	false	"Filter by status, e.g. 'Pending' or 'Provisionally Charged'"
// @Param			offset	query	uint	false	"The offset of the first expense returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of expenses to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// The status filter matches the lifecycle state, not the stored
	// string, so that "Reconciled" matches any reconciliation day
	var filterState models.State
	filterByState := false
	if filter.Status != "" {
		parsed, err := models.ParseStatus(filter.Status)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, ExpenseListResponse{
				Error: &e,
			})
			return
		}

		filterState = parsed.State
		filterByState = true
	}

	q := models.DB.
		Order("date(date) ASC, id ASC")

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	var expenses []models.Expense
	err := q.Find(&expenses).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &e,
		})
		return
	}

	// The type filter supports globbing and the status filter matches on
	// the parsed state, neither of which the database can do
	matches := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if filter.Type != "" && !glob.Glob(filter.Type, expense.Type) {
			continue
		}

		if filterByState && expense.Status.State != filterState {
			continue
		}

		matches = append(matches, expense)
	}

	data := make([]Expense, 0)
	for _, expense := range paginate(matches, int(filter.Offset), limit) {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matches)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Update expense
// @Description	Updates an existing expense. Only values to be updated need to be specified. The status cannot be set through the API, it is managed by the charge engine.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	var editable ExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	update := editable.model()

	methodChanged := false
	for _, field := range updateFields {
		if field == "SplitMethodID" {
			methodChanged = true
		}
	}

	// Keep the denormalized split type in sync when the method changes
	if methodChanged && update.SplitMethodID != 0 {
		var method models.SplitMethod
		err = models.DB.First(&method, update.SplitMethodID).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ExpenseResponse{
				Error: &e,
			})
			return
		}

		update.SplitMethodType = method.Type
		updateFields = append(updateFields, "SplitMethodType")
	}

	err = models.DB.Model(&expense).Select("", updateFields...).Updates(update).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Delete expense
// @Description	Deletes an expense. Expenses with transactions cannot be deleted, their charges have to be deleted first.
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var expense models.Expense
	err = models.DB.First(&expense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	transactions, err := models.TransactionsForExpense(models.DB, expense.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if len(transactions) != 0 {
		c.JSON(http.StatusConflict, httpError{
			Error: "the expense has transactions, delete its charges first",
		})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Create charges
// @Description	Apportions the expense between the people its split method resolves to and creates one charge transaction per person. The charges sum to the negated expense amount exactly.
// @Tags			Expenses
// @Produce		json
// @Success		201	{object}	ChargesResponse
// @Failure		400	{object}	ChargesResponse
// @Failure		404	{object}	ChargesResponse
// @Failure		409	{object}	ChargesResponse
// @Failure		500	{object}	ChargesResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/charges [post]
func CreateExpenseCharges(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesResponse{
			Error: &e,
		})
		return
	}

	transactions, err := ledger.CreateCharges(models.DB, uint(uri.ID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusCreated, ChargesResponse{Data: data})
}

// @Summary		Create provisional charges
// @Description	Creates charges for the expense and marks it Provisionally Charged. The expense needs a start and end date, the covered period is settled later by reconciliation.
// @Tags			Expenses
// @Produce		json
// @Success		201	{object}	ChargesResponse
// @Failure		400	{object}	ChargesResponse
// @Failure		404	{object}	ChargesResponse
// @Failure		409	{object}	ChargesResponse
// @Failure		500	{object}	ChargesResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/provisional-charges [post]
func CreateExpenseProvisionalCharges(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesResponse{
			Error: &e,
		})
		return
	}

	transactions, err := ledger.CreateProvisionalCharges(models.DB, uint(uri.ID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusCreated, ChargesResponse{Data: data})
}

// @Summary		Delete charges
// @Description	Removes all transactions of the expense and resets its status to Pending. Reconciled expenses are refused.
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ChargesDeleteResponse
// @Failure		400	{object}	ChargesDeleteResponse
// @Failure		404	{object}	ChargesDeleteResponse
// @Failure		409	{object}	ChargesDeleteResponse
// @Failure		500	{object}	ChargesDeleteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/charges [delete]
func DeleteExpenseCharges(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesDeleteResponse{
			Error: &e,
		})
		return
	}

	deleted, err := ledger.DeleteCharges(models.DB, uint(uri.ID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ChargesDeleteResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, ChargesDeleteResponse{
		Data: &ChargesDeleted{Deleted: deleted},
	})
}

// @Summary		Reconcile charges
// @Description	Settles the group of provisionally charged expenses sharing the trigger's period and type against actual occupancy and creates one adjustment transaction per person. Reconciling an already reconciled group again is allowed.
// @Tags			Expenses
// @Produce		json
// @Success		201	{object}	ReconciliationResponse
// @Failure		400	{object}	ReconciliationResponse
// @Failure		404	{object}	ReconciliationResponse
// @Failure		500	{object}	ReconciliationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id}/reconciliation [post]
func ReconcileExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &e,
		})
		return
	}

	result, err := ledger.ReconcileCharges(models.DB, uint(uri.ID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &e,
		})
		return
	}

	data := newReconciliation(c, result)
	c.JSON(http.StatusCreated, ReconciliationResponse{Data: &data})
}
