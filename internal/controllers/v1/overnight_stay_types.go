package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/splithaus/backend/internal/models"
	"github.com/splithaus/backend/internal/types"
)

// OvernightStayEditable represents all values for an overnight stay that
// can be set by the API.
type OvernightStayEditable struct {
	PersonCode  string    `json:"personCode" example:"P1"`        // Code of the person who booked the stay
	PersonName  string    `json:"personName" example:"Alice"`     // Display name, filled from the people table when empty
	StartDate   types.Day `json:"startDate" example:"2024-07-01"` // First day of the stay
	EndDate     types.Day `json:"endDate" example:"2024-07-14"`   // Last day of the stay, inclusive
	PersonCount int       `json:"personCount" example:"2"`        // Number of people staying
	Note        string    `json:"note" example:"Summer visit"`
}

func (editable OvernightStayEditable) model() models.OvernightStay {
	return models.OvernightStay{
		PersonCode:  editable.PersonCode,
		PersonName:  editable.PersonName,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		PersonCount: editable.PersonCount,
		Note:        editable.Note,
	}
}

type OvernightStayLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/overnight-stays/100001"` // The stay itself
}

// OvernightStay is the API representation of an overnight stay.
type OvernightStay struct {
	models.Model
	OvernightStayEditable
	Days  int                `json:"days" example:"14"`  // Inclusive day count of the stay
	Stays int                `json:"stays" example:"28"` // Day count times person count
	Links OvernightStayLinks `json:"links"`
}

func newOvernightStay(c *gin.Context, model models.OvernightStay) OvernightStay {
	url := c.GetString(string(models.DBContextURL))

	return OvernightStay{
		Model: model.Model,
		OvernightStayEditable: OvernightStayEditable{
			PersonCode:  model.PersonCode,
			PersonName:  model.PersonName,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			PersonCount: model.PersonCount,
			Note:        model.Note,
		},
		Days:  model.Days(),
		Stays: model.Stays(),
		Links: OvernightStayLinks{
			Self: fmt.Sprintf("%s/v1/overnight-stays/%d", url, model.ID),
		},
	}
}

type OvernightStayResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *OvernightStay `json:"data"`                                                       // The overnight stay
}

type OvernightStayListResponse struct {
	Error      *string         `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []OvernightStay `json:"data"`                                                       // List of overnight stays
	Pagination *Pagination     `json:"pagination"`                                                 // Pagination information
}

type OvernightStayCreateResponse struct {
	Error *string                 `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []OvernightStayResponse `json:"data"`                                                       // List of created overnight stays
}

func (o *OvernightStayCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OvernightStayResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// OvernightStayQueryFilter contains the fields overnight stays can be
// filtered with.
type OvernightStayQueryFilter struct {
	Person     string `form:"person" filterField:"false"`    // By person name, supports globbing
	PersonCode string `form:"personCode"`                    // By person code
	FromDate   string `form:"fromDate" filterField:"false"`  // Only stays overlapping this day or later
	UntilDate  string `form:"untilDate" filterField:"false"` // Only stays overlapping this day or earlier
	Offset     uint   `form:"offset" filterField:"false"`    // The offset of the first stay returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`     // Maximum number of stays to return. Defaults to 50.
}

func (f OvernightStayQueryFilter) model() models.OvernightStay {
	return models.OvernightStay{
		PersonCode: f.PersonCode,
	}
}
