package v1_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	v1 "github.com/splithaus/backend/internal/controllers/v1"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
	"github.com/splithaus/backend/test"
)

func (suite *TestSuiteStandard) TestGetReportList() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ReportListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("http://example.com/v1/reports/balances", response.Links.Balances)
	suite.Assert().Equal("http://example.com/v1/reports/occupancy", response.Links.Occupancy)
}

func (suite *TestSuiteStandard) TestBalanceReport() {
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 5), Type: models.TransactionCharge, Amount: decimal.RequireFromString("-33.33"), Person: "Alice", Account: "DE11"})
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 1, 5), Type: models.TransactionCharge, Amount: decimal.RequireFromString("-66.67"), Person: "Bob", Account: "DE22"})
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2024, 2, 1), Type: models.TransactionReconciliation, Amount: decimal.RequireFromString("10"), Person: "Alice", Account: "DE11"})

	// Outside the window
	suite.createTestTransaction(models.Transaction{Date: types.NewDay(2023, 12, 31), Type: models.TransactionCharge, Amount: decimal.NewFromInt(-999), Person: "Alice"})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/balances?from=2024-01-01&until=2024-02-28", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BalanceReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Balances, 2)

	// Sorted by name
	suite.Assert().Equal("Alice", response.Data.Balances[0].Person)
	suite.Assert().Equal("-23.33", response.Data.Balances[0].Balance.StringFixed(2))
	suite.Assert().Equal("DE11", response.Data.Balances[0].Account)

	suite.Assert().Equal("Bob", response.Data.Balances[1].Person)
	suite.Assert().Equal("-66.67", response.Data.Balances[1].Balance.StringFixed(2))
}

func (suite *TestSuiteStandard) TestOccupancyReport() {
	suite.createTestPerson(models.Person{Code: "P1", Name: "Alice"})
	suite.createTestPerson(models.Person{Code: "P2", Name: "Bob"})

	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P1", StartDate: types.NewDay(2024, 1, 1), EndDate: types.NewDay(2024, 1, 10), PersonCount: 2})
	suite.createTestOvernightStay(models.OvernightStay{PersonCode: "P2", StartDate: types.NewDay(2024, 1, 28), EndDate: types.NewDay(2024, 2, 3), PersonCount: 1})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/reports/occupancy?from=2024-01-01&until=2024-01-31", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OccupancyReportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Occupancy, 2)

	// Sorted by code. Days ignore the person count, stays multiply by it.
	suite.Assert().Equal("P1", response.Data.Occupancy[0].PersonCode)
	suite.Assert().Equal("Alice", response.Data.Occupancy[0].Person)
	suite.Assert().Equal(10, response.Data.Occupancy[0].Days)
	suite.Assert().Equal(20, response.Data.Occupancy[0].Stays)

	// Bob's stay is clipped to the window
	suite.Assert().Equal("P2", response.Data.Occupancy[1].PersonCode)
	suite.Assert().Equal(4, response.Data.Occupancy[1].Days)
	suite.Assert().Equal(4, response.Data.Occupancy[1].Stays)
}

func (suite *TestSuiteStandard) TestReportWindowValidation() {
	tests := []struct {
		name string
		url  string
	}{
		{"balances without window", "http://example.com/v1/reports/balances"},
		{"balances inverted", "http://example.com/v1/reports/balances?from=2024-02-01&until=2024-01-01"},
		{"balances invalid date", "http://example.com/v1/reports/balances?from=NaN&until=2024-01-01"},
		{"occupancy without window", "http://example.com/v1/reports/occupancy"},
		{"occupancy missing until", "http://example.com/v1/reports/occupancy?from=2024-01-01"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}
