package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
)

// OwnershipShareURI is the URI binding for a share nested under its set.
type OwnershipShareURI struct {
	ID      uint64 `uri:"id" binding:"required"`
	ShareID uint64 `uri:"shareId" binding:"required"`
}

// OwnershipSetEditable represents all values for an ownership set that
// can be set by the API.
type OwnershipSetEditable struct {
	Date types.Day `json:"date" example:"2020-01-01"` // The day the set takes effect
}

func (editable OwnershipSetEditable) model() models.OwnershipSet {
	return models.OwnershipSet{
		Date: editable.Date,
	}
}

type OwnershipSetLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/ownership-sets/100001"`          // The ownership set itself
	Shares string `json:"shares" example:"https://example.com/api/v1/ownership-sets/100001/shares"` // The shares of the set
}

// OwnershipSet is the API representation of an ownership set.
type OwnershipSet struct {
	models.Model
	OwnershipSetEditable
	Links OwnershipSetLinks `json:"links"`
}

func newOwnershipSet(c *gin.Context, model models.OwnershipSet) OwnershipSet {
	url := c.GetString(string(models.DBContextURL))

	self := fmt.Sprintf("%s/v1/ownership-sets/%d", url, model.ID)

	return OwnershipSet{
		Model: model.Model,
		OwnershipSetEditable: OwnershipSetEditable{
			Date: model.Date,
		},
		Links: OwnershipSetLinks{
			Self:   self,
			Shares: self + "/shares",
		},
	}
}

type OwnershipSetResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *OwnershipSet `json:"data"`                                                       // The ownership set
}

type OwnershipSetListResponse struct {
	Error      *string        `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []OwnershipSet `json:"data"`                                                       // List of ownership sets
	Pagination *Pagination    `json:"pagination"`                                                 // Pagination information
}

type OwnershipSetCreateResponse struct {
	Error *string                `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []OwnershipSetResponse `json:"data"`                                                       // List of created ownership sets
}

func (o *OwnershipSetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OwnershipSetResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// OwnershipSetQueryFilter contains the fields ownership sets can be
// filtered with.
type OwnershipSetQueryFilter struct {
	Date   string `form:"date"`                        // By the day the set takes effect
	Offset uint   `form:"offset" filterField:"false"`  // The offset of the first set returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`   // Maximum number of sets to return. Defaults to 50.
}

func (f OwnershipSetQueryFilter) model() (models.OwnershipSet, error) {
	var date types.Day

	if f.Date != "" {
		var err error
		date, err = types.ParseDay(f.Date)
		if err != nil {
			return models.OwnershipSet{}, err
		}
	}

	return models.OwnershipSet{
		Date: date,
	}, nil
}

// OwnershipShareEditable represents all values for an ownership share
// that can be set by the API. The set it belongs to comes from the URI.
type OwnershipShareEditable struct {
	Owner      string          `json:"owner" example:"Alice"`   // Display name of the owner
	Percentage decimal.Decimal `json:"percentage" example:"33.33"` // Ownership percentage, 0 to 100
}

func (editable OwnershipShareEditable) model(setID uint) models.OwnershipShare {
	return models.OwnershipShare{
		OwnershipSetID: setID,
		Owner:          editable.Owner,
		Percentage:     editable.Percentage,
	}
}

type OwnershipShareLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/ownership-sets/100001/shares/100001"` // The share itself
}

// OwnershipShare is the API representation of an ownership share.
type OwnershipShare struct {
	models.Model
	OwnershipShareEditable
	OwnershipSetID uint                `json:"ownershipSetId" example:"100001"` // The set the share belongs to
	Links          OwnershipShareLinks `json:"links"`
}

func newOwnershipShare(c *gin.Context, model models.OwnershipShare) OwnershipShare {
	url := c.GetString(string(models.DBContextURL))

	return OwnershipShare{
		Model: model.Model,
		OwnershipShareEditable: OwnershipShareEditable{
			Owner:      model.Owner,
			Percentage: model.Percentage,
		},
		OwnershipSetID: model.OwnershipSetID,
		Links: OwnershipShareLinks{
			Self: fmt.Sprintf("%s/v1/ownership-sets/%d/shares/%d", url, model.OwnershipSetID, model.ID),
		},
	}
}

type OwnershipShareResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *OwnershipShare `json:"data"`                                                       // The share
}

type OwnershipShareListResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []OwnershipShare `json:"data"`                                                       // Shares of the set, in row order
}

type OwnershipShareCreateResponse struct {
	Error *string                  `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []OwnershipShareResponse `json:"data"`                                                       // List of created shares
}

func (o *OwnershipShareCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OwnershipShareResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}
