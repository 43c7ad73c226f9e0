package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterOvernightStayRoutes registers the routes for overnight stays
// with the RouterGroup that is passed.
func RegisterOvernightStayRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOvernightStayList)
		r.GET("", GetOvernightStays)
		r.POST("", CreateOvernightStays)
	}

	// OvernightStay with ID
	{
		r.OPTIONS("/:id", OptionsOvernightStayDetail)
		r.GET("/:id", GetOvernightStay)
		r.PATCH("/:id", UpdateOvernightStay)
		r.DELETE("/:id", DeleteOvernightStay)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OvernightStays
// @Success		204
// @Router			/v1/overnight-stays [options]
func OptionsOvernightStayList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OvernightStays
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overnight-stays/{id} [options]
func OptionsOvernightStayDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.OvernightStay{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create overnight stays
// @Description	Creates new overnight stays
// @Tags			OvernightStays
// @Produce		json
// @Success		201		{object}	OvernightStayCreateResponse
// @Failure		400		{object}	OvernightStayCreateResponse
// @Failure		500		{object}	OvernightStayCreateResponse
// @Param			stays	body		[]OvernightStayEditable	true	"OvernightStays"
// @Router			/v1/overnight-stays [post]
func CreateOvernightStays(c *gin.Context) {
	var editables []OvernightStayEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := OvernightStayCreateResponse{}

	for _, editable := range editables {
		stay := editable.model()

		err = models.DB.Create(&stay).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newOvernightStay(c, stay)
		r.Data = append(r.Data, OvernightStayResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get overnight stays
// @Description	Returns a list of overnight stays
// @Tags			OvernightStays
// @Produce		json
// @Success		200	{object}	OvernightStayListResponse
// @Failure		400	{object}	OvernightStayListResponse
// @Failure		500	{object}	OvernightStayListResponse
// @Router			/v1/overnight-stays [get]
// @Param			person		query	string	false	"Filter by person name, supports globbing"
// @Param			personCode	query	string	false	"Filter by person code"
// @Param			fromDate	query	string	false	"Only stays overlapping this day or later"
// @Param			untilDate	query	string	false	"Only stays overlapping this day or earlier"
// @Param			offset		query	uint	false	"The offset of the first stay returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of stays to return. Defaults to 50."
func GetOvernightStays(c *gin.Context) {
	var filter OvernightStayQueryFilter
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("date(start_date) ASC, id ASC").
		Where(&where, queryFields...)

	// The date filters select stays whose range overlaps the window
	if filter.FromDate != "" {
		q = q.Where("date(end_date) >= date(?)", filter.FromDate)
	}

	if filter.UntilDate != "" {
		q = q.Where("date(start_date) <= date(?)", filter.UntilDate)
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	var stays []models.OvernightStay
	err := q.Find(&stays).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayListResponse{
			Error: &e,
		})
		return
	}

	// The person filter supports globbing, which the database cannot do
	matches := make([]models.OvernightStay, 0, len(stays))
	for _, stay := range stays {
		if filter.Person != "" && !glob.Glob(filter.Person, stay.PersonName) {
			continue
		}

		matches = append(matches, stay)
	}

	data := make([]OvernightStay, 0)
	for _, stay := range paginate(matches, int(filter.Offset), limit) {
		data = append(data, newOvernightStay(c, stay))
	}

	c.JSON(http.StatusOK, OvernightStayListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matches)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get overnight stay
// @Description	Returns a specific overnight stay
// @Tags			OvernightStays
// @Produce		json
// @Success		200	{object}	OvernightStayResponse
// @Failure		400	{object}	OvernightStayResponse
// @Failure		404	{object}	OvernightStayResponse
// @Failure		500	{object}	OvernightStayResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overnight-stays/{id} [get]
func GetOvernightStay(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	var stay models.OvernightStay
	err = models.DB.First(&stay, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	data := newOvernightStay(c, stay)
	c.JSON(http.StatusOK, OvernightStayResponse{Data: &data})
}

// @Summary		Update overnight stay
// @Description	Updates an existing overnight stay. Only values to be updated need to be specified.
// @Tags			OvernightStays
// @Accept			json
// @Produce		json
// @Success		200		{object}	OvernightStayResponse
// @Failure		400		{object}	OvernightStayResponse
// @Failure		404		{object}	OvernightStayResponse
// @Failure		500		{object}	OvernightStayResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			stay	body		OvernightStayEditable	true	"OvernightStay"
// @Router			/v1/overnight-stays/{id} [patch]
func UpdateOvernightStay(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	var stay models.OvernightStay
	err = models.DB.First(&stay, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OvernightStayEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	var editable OvernightStayEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&stay).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OvernightStayResponse{
			Error: &e,
		})
		return
	}

	data := newOvernightStay(c, stay)
	c.JSON(http.StatusOK, OvernightStayResponse{Data: &data})
}

// @Summary		Delete overnight stay
// @Description	Deletes an overnight stay
// @Tags			OvernightStays
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overnight-stays/{id} [delete]
func DeleteOvernightStay(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var stay models.OvernightStay
	err = models.DB.First(&stay, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&stay).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
