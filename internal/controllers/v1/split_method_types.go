package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/splithaus/backend/internal/models"
)

// SplitMethodEditable represents all values for a split method that can
// be set by the API.
type SplitMethodEditable struct {
	Type models.SplitType `json:"type" example:"4"`                                                      // 1 equal, 2 ownership, 3 occupancy, 4 custom
	Name string           `json:"name" example:"Utilities by weight"`                                    // Display name of the method
	JSON string           `json:"json" example:"{\"type\":\"weights\",\"splits\":[{\"pid\":\"P1\",\"w\":1}]}"` // Custom split payload, required for custom methods
}

func (editable SplitMethodEditable) model() models.SplitMethod {
	return models.SplitMethod{
		Type: editable.Type,
		Name: editable.Name,
		JSON: editable.JSON,
	}
}

type SplitMethodLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/split-methods/101"` // The split method itself
}

// SplitMethod is the API representation of a split method.
type SplitMethod struct {
	models.Model
	SplitMethodEditable
	Links SplitMethodLinks `json:"links"`
}

func newSplitMethod(c *gin.Context, model models.SplitMethod) SplitMethod {
	url := c.GetString(string(models.DBContextURL))

	return SplitMethod{
		Model: model.Model,
		SplitMethodEditable: SplitMethodEditable{
			Type: model.Type,
			Name: model.Name,
			JSON: model.JSON,
		},
		Links: SplitMethodLinks{
			Self: fmt.Sprintf("%s/v1/split-methods/%d", url, model.ID),
		},
	}
}

type SplitMethodResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *SplitMethod `json:"data"`                                                       // The split method
}

type SplitMethodListResponse struct {
	Error      *string       `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []SplitMethod `json:"data"`                                                       // List of split methods
	Pagination *Pagination   `json:"pagination"`                                                 // Pagination information
}

type SplitMethodCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []SplitMethodResponse `json:"data"`                                                       // List of created split methods
}

func (s *SplitMethodCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SplitMethodResponse{Error: &e})

	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// SplitMethodQueryFilter contains the fields split methods can be
// filtered with.
type SplitMethodQueryFilter struct {
	Type   uint8  `form:"type"`                       // By split type
	Name   string `form:"name" filterField:"false"`   // By name, supports globbing
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first method returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of methods to return. Defaults to 50.
}

func (f SplitMethodQueryFilter) model() models.SplitMethod {
	return models.SplitMethod{
		Type: models.SplitType(f.Type),
	}
}
