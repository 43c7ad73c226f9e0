package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterPersonRoutes registers the routes for people with
// the RouterGroup that is passed.
func RegisterPersonRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPersonList)
		r.GET("", GetPeople)
		r.POST("", CreatePeople)
	}

	// Person with ID
	{
		r.OPTIONS("/:id", OptionsPersonDetail)
		r.GET("/:id", GetPerson)
		r.PATCH("/:id", UpdatePerson)
		r.DELETE("/:id", DeletePerson)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			People
// @Success		204
// @Router			/v1/people [options]
func OptionsPersonList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			People
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/people/{id} [options]
func OptionsPersonDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Person{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create people
// @Description	Creates new people
// @Tags			People
// @Produce		json
// @Success		201		{object}	PersonCreateResponse
// @Failure		400		{object}	PersonCreateResponse
// @Failure		500		{object}	PersonCreateResponse
// @Param			people	body		[]PersonEditable	true	"People"
// @Router			/v1/people [post]
func CreatePeople(c *gin.Context) {
	var editables []PersonEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := PersonCreateResponse{}

	for _, editable := range editables {
		person := editable.model()

		err = models.DB.Create(&person).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newPerson(c, person)
		r.Data = append(r.Data, PersonResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get people
// @Description	Returns a list of people
// @Tags			People
// @Produce		json
// @Success		200	{object}	PersonListResponse
// @Failure		400	{object}	PersonListResponse
// @Failure		500	{object}	PersonListResponse
// @Router			/v1/people [get]
// @Param			code	query	string	false	"Filter by code"
// @Param			name	query	string	false	"Filter by name, supports globbing"
// @Param			offset	query	uint	false	"The offset of the first Person returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of People to return. Defaults to 50."
func GetPeople(c *gin.Context) {
	var filter PersonQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("id ASC").
		Where(&where, queryFields...)

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	var people []models.Person
	err := q.Find(&people).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonListResponse{
			Error: &e,
		})
		return
	}

	// The name filter supports globbing, which the database cannot do
	matches := make([]models.Person, 0, len(people))
	for _, person := range people {
		if filter.Name != "" && !glob.Glob(filter.Name, person.Name) {
			continue
		}

		matches = append(matches, person)
	}

	data := make([]Person, 0)
	for _, person := range paginate(matches, int(filter.Offset), limit) {
		data = append(data, newPerson(c, person))
	}

	c.JSON(http.StatusOK, PersonListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matches)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get person
// @Description	Returns a specific person
// @Tags			People
// @Produce		json
// @Success		200	{object}	PersonResponse
// @Failure		400	{object}	PersonResponse
// @Failure		404	{object}	PersonResponse
// @Failure		500	{object}	PersonResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/people/{id} [get]
func GetPerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &data})
}

// @Summary		Update person
// @Description	Updates an existing person. Only values to be updated need to be specified.
// @Tags			People
// @Accept			json
// @Produce		json
// @Success		200		{object}	PersonResponse
// @Failure		400		{object}	PersonResponse
// @Failure		404		{object}	PersonResponse
// @Failure		500		{object}	PersonResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			person	body		PersonEditable	true	"Person"
// @Router			/v1/people/{id} [patch]
func UpdatePerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PersonEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	var editable PersonEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&person).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &e,
		})
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &data})
}

// @Summary		Delete person
// @Description	Deletes a person
// @Tags			People
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/people/{id} [delete]
func DeletePerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&person).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
