package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/splithaus/backend/internal/models"
)

// PersonEditable represents all values for a person that can be set by the API.
type PersonEditable struct {
	Code          string `json:"code" example:"P1"`                        // Short code used to reference the person in split methods
	Name          string `json:"name" example:"Alice"`                     // Full name of the person
	AccountNumber string `json:"accountNumber" example:"DE02120300000000202051"` // Bank account charges are booked against
}

// model returns the database resource for the API representation.
func (editable PersonEditable) model() models.Person {
	return models.Person{
		Code:          editable.Code,
		Name:          editable.Name,
		AccountNumber: editable.AccountNumber,
	}
}

type PersonLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/people/1"` // The person itself
}

// Person is the API representation of a person.
type Person struct {
	models.Model
	PersonEditable
	Links PersonLinks `json:"links"`
}

func newPerson(c *gin.Context, model models.Person) Person {
	url := c.GetString(string(models.DBContextURL))

	return Person{
		Model: model.Model,
		PersonEditable: PersonEditable{
			Code:          model.Code,
			Name:          model.Name,
			AccountNumber: model.AccountNumber,
		},
		Links: PersonLinks{
			Self: fmt.Sprintf("%s/v1/people/%d", url, model.ID),
		},
	}
}

type PersonResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  *Person `json:"data"`                                                       // The person
}

type PersonListResponse struct {
	Error      *string     `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data       []Person    `json:"data"`                                                       // List of people
	Pagination *Pagination `json:"pagination"`                                                 // Pagination information
}

type PersonCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid ID"` // The error, if one occurred
	Data  []PersonResponse `json:"data"`                                                       // List of created people
}

func (p *PersonCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PersonResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		currentStatus = newStatus
	}

	return currentStatus
}

// PersonQueryFilter contains the fields people can be filtered with.
type PersonQueryFilter struct {
	Code   string `form:"code"`                        // By code
	Name   string `form:"name" filterField:"false"`   // By name, supports globbing
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first person returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of people to return. Defaults to 50.
}

// model returns the database resource for the query filter.
func (f PersonQueryFilter) model() models.Person {
	return models.Person{
		Code: f.Code,
	}
}
