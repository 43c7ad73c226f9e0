package v1_test

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	v1 "github.com/splithaus/backend/internal/controllers/v1"
	"github.com/splithaus/backend/internal/types"
	"github.com/splithaus/backend/test"
)

func (suite *TestSuiteStandard) createOwnershipSetViaAPI(date types.Day) v1.OwnershipSet {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/ownership-sets", []v1.OwnershipSetEditable{
		{Date: date},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.OwnershipSetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestOptionsOwnershipSet() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/ownership-sets", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", recorder.Header().Get("allow"))

	set := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))

	recorder = test.Request(suite.T(), http.MethodOptions, set.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, PATCH, DELETE", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, set.Links.Shares, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateOwnershipSet() {
	set := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))

	suite.Assert().Equal(uint(100001), set.ID)
	suite.Assert().Equal("http://example.com/v1/ownership-sets/100001", set.Links.Self)
	suite.Assert().Equal("http://example.com/v1/ownership-sets/100001/shares", set.Links.Shares)
}

func (suite *TestSuiteStandard) TestOwnershipShares() {
	set := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))

	recorder := test.Request(suite.T(), http.MethodPost, set.Links.Shares, []v1.OwnershipShareEditable{
		{Owner: "Alice", Percentage: decimal.RequireFromString("33.33")},
		{Owner: "Bob", Percentage: decimal.RequireFromString("33.33")},
		{Owner: "Carol", Percentage: decimal.RequireFromString("33.34")},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.OwnershipShareCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 3)

	recorder = test.Request(suite.T(), http.MethodGet, set.Links.Shares, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.OwnershipShareListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)

	suite.Require().Len(list.Data, 3)
	suite.Assert().Equal("Alice", list.Data[0].Owner)
	suite.Assert().Equal("33.33", list.Data[0].Percentage.String())
	suite.Assert().Equal(set.ID, list.Data[0].OwnershipSetID)
}

func (suite *TestSuiteStandard) TestOwnershipShareDetail() {
	set := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))

	recorder := test.Request(suite.T(), http.MethodPost, set.Links.Shares, []v1.OwnershipShareEditable{
		{Owner: "Alice", Percentage: decimal.RequireFromString("60")},
		{Owner: "Bob", Percentage: decimal.RequireFromString("40")},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.OwnershipShareCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().Len(created.Data, 2)

	share := created.Data[0].Data

	recorder = test.Request(suite.T(), http.MethodGet, share.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPatch, share.Links.Self, map[string]any{
		"percentage": "55",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.OwnershipShareResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal("55", updated.Data.Percentage.String())

	recorder = test.Request(suite.T(), http.MethodDelete, share.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, share.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestOwnershipShareWrongSet() {
	first := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))
	second := suite.createOwnershipSetViaAPI(types.NewDay(2021, 1, 1))

	recorder := test.Request(suite.T(), http.MethodPost, first.Links.Shares, []v1.OwnershipShareEditable{
		{Owner: "Alice", Percentage: decimal.RequireFromString("100")},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.OwnershipShareCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	shareID := created.Data[0].Data.ID

	// The share does not belong to the second set
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("%s/shares/%d", second.Links.Self, shareID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestOwnershipSharesUnknownSet() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ownership-sets/999999/shares", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteOwnershipSetCascades() {
	set := suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))

	recorder := test.Request(suite.T(), http.MethodPost, set.Links.Shares, []v1.OwnershipShareEditable{
		{Owner: "Alice", Percentage: decimal.RequireFromString("100")},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodDelete, set.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, set.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetOwnershipSetsFilter() {
	suite.createOwnershipSetViaAPI(types.NewDay(2020, 1, 1))
	suite.createOwnershipSetViaAPI(types.NewDay(2021, 6, 15))

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ownership-sets?date=2021-06-15", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OwnershipSetListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ownership-sets?date=NaN", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
