package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/ledger"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterReportRoutes registers the routes for reports with the
// RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReportList)
	r.GET("", GetReportList)

	r.OPTIONS("/balances", OptionsReport)
	r.GET("/balances", GetBalanceReport)

	r.OPTIONS("/occupancy", OptionsReport)
	r.GET("/occupancy", GetOccupancyReport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReportList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/balances [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

type ReportLinks struct {
	Balances  string `json:"balances" example:"https://example.com/api/v1/reports/balances"`   // Per-person transaction sums
	Occupancy string `json:"occupancy" example:"https://example.com/api/v1/reports/occupancy"` // Per-person days and stays
}

type ReportListResponse struct {
	Links ReportLinks `json:"links"` // The available reports
}

// @Summary		List reports
// @Description	Returns the links to the available reports
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Router			/v1/reports [get]
func GetReportList(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, ReportListResponse{
		Links: ReportLinks{
			Balances:  url + "/v1/reports/balances",
			Occupancy: url + "/v1/reports/occupancy",
		},
	})
}

// reportWindow parses and validates the from/until query parameters
// shared by all reports.
func reportWindow(c *gin.Context) (from, until types.Day, err error) {
	fromString, untilString := c.Query("from"), c.Query("until")

	if fromString == "" || untilString == "" {
		return types.Day{}, types.Day{}, errReportWindowRequired
	}

	from, err = types.ParseDay(fromString)
	if err != nil {
		return types.Day{}, types.Day{}, err
	}

	until, err = types.ParseDay(untilString)
	if err != nil {
		return types.Day{}, types.Day{}, err
	}

	if until.Before(from) {
		return types.Day{}, types.Day{}, errReportWindowInverted
	}

	return from, until, nil
}

// PersonBalance is one person's transaction sum over the report window.
type PersonBalance struct {
	Person  string          `json:"person" example:"Alice"`                   // Display name
	Account string          `json:"account" example:"DE02120300000000202051"` // Account reference
	Balance decimal.Decimal `json:"balance" example:"-83.33"`                 // Sum of the person's transactions in the window
}

type BalanceReport struct {
	From     types.Day       `json:"from" example:"2024-01-01"`
	Until    types.Day       `json:"until" example:"2024-01-31"`
	Balances []PersonBalance `json:"balances"` // Per person, sorted by name
}

type BalanceReportResponse struct {
	Error *string        `json:"error" example:"the from and until query parameters must be set"` // The error, if one occurred
	Data  *BalanceReport `json:"data"`                                                                // The report
}

// @Summary		Balance report
// @Description	Returns the per-person sum of all transactions in the window
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	BalanceReportResponse
// @Failure		400		{object}	BalanceReportResponse
// @Failure		500		{object}	BalanceReportResponse
// @Param			from	query		string	true	"First day of the window"
// @Param			until	query		string	true	"Last day of the window, inclusive"
// @Router			/v1/reports/balances [get]
func GetBalanceReport(c *gin.Context) {
	from, until, err := reportWindow(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BalanceReportResponse{
			Error: &e,
		})
		return
	}

	var transactions []models.Transaction
	err = models.OrderedTransactions(models.DB).
		Where("date(date) >= date(?) AND date(date) <= date(?)", from, until).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceReportResponse{
			Error: &e,
		})
		return
	}

	sums := make(map[string]decimal.Decimal)
	accounts := make(map[string]string)
	for _, transaction := range transactions {
		sums[transaction.Person] = sums[transaction.Person].Add(transaction.Amount)

		if transaction.Account != "" {
			accounts[transaction.Person] = transaction.Account
		}
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	slices.Sort(names)

	balances := make([]PersonBalance, 0, len(names))
	for _, name := range names {
		balances = append(balances, PersonBalance{
			Person:  name,
			Account: accounts[name],
			Balance: sums[name],
		})
	}

	c.JSON(http.StatusOK, BalanceReportResponse{
		Data: &BalanceReport{
			From:     from,
			Until:    until,
			Balances: balances,
		},
	})
}

// PersonOccupancy is one person's presence over the report window.
type PersonOccupancy struct {
	PersonCode string `json:"personCode" example:"P1"`
	Person     string `json:"person" example:"Alice"` // Display name from the stay records
	Days       int    `json:"days" example:"10"`      // Days present, independent of the person count
	Stays      int    `json:"stays" example:"20"`     // Person-nights: days times person count
}

type OccupancyReport struct {
	From      types.Day         `json:"from" example:"2024-01-01"`
	Until     types.Day         `json:"until" example:"2024-01-31"`
	Occupancy []PersonOccupancy `json:"occupancy"` // Per person, sorted by code
}

type OccupancyReportResponse struct {
	Error *string          `json:"error" example:"the from and until query parameters must be set"` // The error, if one occurred
	Data  *OccupancyReport `json:"data"`                                                                // The report
}

// @Summary		Occupancy report
// @Description	Returns the days and person-nights per person in the window
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	OccupancyReportResponse
// @Failure		400		{object}	OccupancyReportResponse
// @Failure		500		{object}	OccupancyReportResponse
// @Param			from	query		string	true	"First day of the window"
// @Param			until	query		string	true	"Last day of the window, inclusive"
// @Router			/v1/reports/occupancy [get]
func GetOccupancyReport(c *gin.Context) {
	from, until, err := reportWindow(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, OccupancyReportResponse{
			Error: &e,
		})
		return
	}

	stays, err := ledger.StaysByPerson(models.DB, from, until)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OccupancyReportResponse{
			Error: &e,
		})
		return
	}

	days, err := ledger.DaysByPerson(models.DB, from, until, until)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OccupancyReportResponse{
			Error: &e,
		})
		return
	}

	codes := make([]string, 0, len(stays))
	for code := range stays {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	occupancy := make([]PersonOccupancy, 0, len(codes))
	for _, code := range codes {
		occupancy = append(occupancy, PersonOccupancy{
			PersonCode: code,
			Person:     stays[code].Name,
			Days:       days[code],
			Stays:      stays[code].Stays,
		})
	}

	c.JSON(http.StatusOK, OccupancyReportResponse{
		Data: &OccupancyReport{
			From:      from,
			Until:     until,
			Occupancy: occupancy,
		},
	})
}
