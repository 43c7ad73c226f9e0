package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterSplitMethodRoutes registers the routes for split methods with
// the RouterGroup that is passed.
func RegisterSplitMethodRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSplitMethodList)
		r.GET("", GetSplitMethods)
		r.POST("", CreateSplitMethods)
	}

	// SplitMethod with ID
	{
		r.OPTIONS("/:id", OptionsSplitMethodDetail)
		r.GET("/:id", GetSplitMethod)
		r.PATCH("/:id", UpdateSplitMethod)
		r.DELETE("/:id", DeleteSplitMethod)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SplitMethods
// @Success		204
// @Router			/v1/split-methods [options]
func OptionsSplitMethodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SplitMethods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/split-methods/{id} [options]
func OptionsSplitMethodDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.SplitMethod{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create split methods
// @Description	Creates new split methods. Custom methods must carry a valid JSON payload.
// @Tags			SplitMethods
// @Produce		json
// @Success		201		{object}	SplitMethodCreateResponse
// @Failure		400		{object}	SplitMethodCreateResponse
// @Failure		500		{object}	SplitMethodCreateResponse
// @Param			methods	body		[]SplitMethodEditable	true	"SplitMethods"
// @Router			/v1/split-methods [post]
func CreateSplitMethods(c *gin.Context) {
	var editables []SplitMethodEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := SplitMethodCreateResponse{}

	for _, editable := range editables {
		method := editable.model()

		// Reject custom payloads that the engine would refuse later
		if method.Type == models.SplitTypeCustom {
			_, err = method.CustomSplit()
			if err != nil {
				s = r.appendError(err, s)
				continue
			}
		}

		if !method.Type.Valid() {
			s = r.appendError(models.ErrSplitTypeInvalid, s)
			continue
		}

		err = models.DB.Create(&method).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newSplitMethod(c, method)
		r.Data = append(r.Data, SplitMethodResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get split methods
// @Description	Returns a list of split methods
// @Tags			SplitMethods
// @Produce		json
// @Success		200	{object}	SplitMethodListResponse
// @Failure		400	{object}	SplitMethodListResponse
// @Failure		500	{object}	SplitMethodListResponse
// @Router			/v1/split-methods [get]
// @Param			type	query	uint8	false	"Filter by split type"
// @Param			name	query	string	false	"Filter by name, supports globbing"
// @Param			offset	query	uint	false	"The offset of the first method returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of methods to return. Defaults to 50."
func GetSplitMethods(c *gin.Context) {
	var filter SplitMethodQueryFilter
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

	var methods []models.SplitMethod
	err := q.Find(&methods).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodListResponse{
			Error: &e,
		})
		return
	}

	// The name filter supports globbing, which the database cannot do
	matches := make([]models.SplitMethod, 0, len(methods))
	for _, method := range methods {
		if filter.Name != "" && !glob.Glob(filter.Name, method.Name) {
			continue
		}

		matches = append(matches, method)
	}

	data := make([]SplitMethod, 0)
	for _, method := range paginate(matches, int(filter.Offset), limit) {
		data = append(data, newSplitMethod(c, method))
	}

	c.JSON(http.StatusOK, SplitMethodListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(len(matches)),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get split method
// @Description	Returns a specific split method
// @Tags			SplitMethods
// @Produce		json
// @Success		200	{object}	SplitMethodResponse
// @Failure		400	{object}	SplitMethodResponse
// @Failure		404	{object}	SplitMethodResponse
// @Failure		500	{object}	SplitMethodResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/split-methods/{id} [get]
func GetSplitMethod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	var method models.SplitMethod
	err = models.DB.First(&method, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	data := newSplitMethod(c, method)
	c.JSON(http.StatusOK, SplitMethodResponse{Data: &data})
}

// @Summary		Update split method
// @Description	Updates an existing split method. Only values to be updated need to be specified.
// @Tags			SplitMethods
// @Accept			json
// @Produce		json
// @Success		200		{object}	SplitMethodResponse
// @Failure		400		{object}	SplitMethodResponse
// @Failure		404		{object}	SplitMethodResponse
// @Failure		500		{object}	SplitMethodResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			method	body		SplitMethodEditable	true	"SplitMethod"
// @Router			/v1/split-methods/{id} [patch]
func UpdateSplitMethod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	var method models.SplitMethod
	err = models.DB.First(&method, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SplitMethodEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	var editable SplitMethodEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&method).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitMethodResponse{
			Error: &e,
		})
		return
	}

	data := newSplitMethod(c, method)
	c.JSON(http.StatusOK, SplitMethodResponse{Data: &data})
}

// @Summary		Delete split method
// @Description	Deletes a split method
// @Tags			SplitMethods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/split-methods/{id} [delete]
func DeleteSplitMethod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var method models.SplitMethod
	err = models.DB.First(&method, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&method).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
