package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/splithaus/backend/internal/controllers/v1"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/test"
)

func (suite *TestSuiteStandard) TestOptionsSplitMethod() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/split-methods", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, POST", recorder.Header().Get("allow"))

	method := suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeEqual, Name: "Equal"})

	recorder = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/split-methods/%d", method.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET, PATCH, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateSplitMethods() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/split-methods", []v1.SplitMethodEditable{
		{Type: models.SplitTypeEqual, Name: "Equal"},
		{Type: models.SplitTypeCustom, Name: "By weight", JSON: `{"type":"weights","splits":[{"pid":"P1","w":1},{"pid":"P2","w":2}]}`},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.SplitMethodCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(uint(101), response.Data[0].Data.ID)
	suite.Assert().Equal(uint(102), response.Data[1].Data.ID)
}

func (suite *TestSuiteStandard) TestCreateSplitMethodInvalid() {
	tests := []struct {
		name     string
		editable v1.SplitMethodEditable
	}{
		{"unknown type", v1.SplitMethodEditable{Type: 9, Name: "Nine"}},
		{"custom without payload", v1.SplitMethodEditable{Type: models.SplitTypeCustom, Name: "Empty"}},
		{"custom with invalid payload", v1.SplitMethodEditable{Type: models.SplitTypeCustom, Name: "Broken", JSON: `{"type":"magic","splits":[]}`}},
		{"custom with unparseable payload", v1.SplitMethodEditable{Type: models.SplitTypeCustom, Name: "Garbage", JSON: `{{`}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/split-methods", []v1.SplitMethodEditable{tt.editable})
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetSplitMethodsFilter() {
	suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeEqual, Name: "Equal split"})
	suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeOwnership, Name: "Ownership split"})
	suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeCustom, Name: "Custom fixed", JSON: `{"type":"fixed","splits":[{"pid":"P1","amt":30}]}`})

	tests := []struct {
		name  string
		url   string
		count int
	}{
		{"all", "http://example.com/v1/split-methods", 3},
		{"by type", "http://example.com/v1/split-methods?type=2", 1},
		{"by name glob", "http://example.com/v1/split-methods?name=*split", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.SplitMethodListResponse
			test.DecodeResponse(t, &recorder, &response)

			if len(response.Data) != tt.count {
				t.Errorf("expected %d split methods, got %d", tt.count, len(response.Data))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateSplitMethod() {
	method := suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeEqual, Name: "Equal"})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/split-methods/%d", method.ID), map[string]any{
		"name": "Equal between owners",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SplitMethodResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Equal between owners", response.Data.Name)
}

func (suite *TestSuiteStandard) TestDeleteSplitMethod() {
	method := suite.createTestSplitMethod(models.SplitMethod{Type: models.SplitTypeEqual, Name: "Equal"})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/split-methods/%d", method.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/split-methods/%d", method.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
