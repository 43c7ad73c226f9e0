package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splithaus/backend/internal/httputil"
	"github.com/splithaus/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterOwnershipSetRoutes registers the routes for ownership sets and
// their shares with the RouterGroup that is passed.
func RegisterOwnershipSetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOwnershipSetList)
		r.GET("", GetOwnershipSets)
		r.POST("", CreateOwnershipSets)
	}

	// OwnershipSet with ID
	{
		r.OPTIONS("/:id", OptionsOwnershipSetDetail)
		r.GET("/:id", GetOwnershipSet)
		r.PATCH("/:id", UpdateOwnershipSet)
		r.DELETE("/:id", DeleteOwnershipSet)
	}

	// Shares of an OwnershipSet
	{
		r.OPTIONS("/:id/shares", OptionsOwnershipShareList)
		r.GET("/:id/shares", GetOwnershipShares)
		r.POST("/:id/shares", CreateOwnershipShares)
	}

	// Share with ID
	{
		r.OPTIONS("/:id/shares/:shareId", OptionsOwnershipShareDetail)
		r.GET("/:id/shares/:shareId", GetOwnershipShare)
		r.PATCH("/:id/shares/:shareId", UpdateOwnershipShare)
		r.DELETE("/:id/shares/:shareId", DeleteOwnershipShare)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OwnershipSets
// @Success		204
// @Router			/v1/ownership-sets [options]
func OptionsOwnershipSetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OwnershipSets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ownership-sets/{id} [options]
func OptionsOwnershipSetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.OwnershipSet{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create ownership sets
// @Description	Creates new ownership sets
// @Tags			OwnershipSets
// @Produce		json
// @Success		201		{object}	OwnershipSetCreateResponse
// @Failure		400		{object}	OwnershipSetCreateResponse
// @Failure		500		{object}	OwnershipSetCreateResponse
// @Param			sets	body		[]OwnershipSetEditable	true	"OwnershipSets"
// @Router			/v1/ownership-sets [post]
func CreateOwnershipSets(c *gin.Context) {
	var editables []OwnershipSetEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := OwnershipSetCreateResponse{}

	for _, editable := range editables {
		set := editable.model()

		err = models.DB.Create(&set).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newOwnershipSet(c, set)
		r.Data = append(r.Data, OwnershipSetResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get ownership sets
// @Description	Returns a list of ownership sets
// @Tags			OwnershipSets
// @Produce		json
// @Success		200	{object}	OwnershipSetListResponse
// @Failure		400	{object}	OwnershipSetListResponse
// @Failure		500	{object}	OwnershipSetListResponse
// @Router			/v1/ownership-sets [get]
// @Param			date	query	string	false	"Filter by date"
// @Param			offset	query	uint	false	"The offset of the first set returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of sets to return. Defaults to 50."
func GetOwnershipSets(c *gin.Context) {
	var filter OwnershipSetQueryFilter
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, OwnershipSetListResponse{
			Error: &e,
		})
		return
	}

	q := models.DB.
		Order("date ASC, id ASC").
		Where(&where, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var sets []models.OwnershipSet
	err = q.Find(&sets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]OwnershipSet, 0, len(sets))
	for _, set := range sets {
		data = append(data, newOwnershipSet(c, set))
	}

	c.JSON(http.StatusOK, OwnershipSetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get ownership set
// @Description	Returns a specific ownership set
// @Tags			OwnershipSets
// @Produce		json
// @Success		200	{object}	OwnershipSetResponse
// @Failure		400	{object}	OwnershipSetResponse
// @Failure		404	{object}	OwnershipSetResponse
// @Failure		500	{object}	OwnershipSetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ownership-sets/{id} [get]
func GetOwnershipSet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	var set models.OwnershipSet
	err = models.DB.First(&set, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	data := newOwnershipSet(c, set)
	c.JSON(http.StatusOK, OwnershipSetResponse{Data: &data})
}

// @Summary		Update ownership set
// @Description	Updates an existing ownership set. Only values to be updated need to be specified.
// @Tags			OwnershipSets
// @Accept			json
// @Produce		json
// @Success		200	{object}	OwnershipSetResponse
// @Failure		400	{object}	OwnershipSetResponse
// @Failure		404	{object}	OwnershipSetResponse
// @Failure		500	{object}	OwnershipSetResponse
// @Param			id	path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			set	body		OwnershipSetEditable	true	"OwnershipSet"
// @Router			/v1/ownership-sets/{id} [patch]
func UpdateOwnershipSet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	var set models.OwnershipSet
	err = models.DB.First(&set, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OwnershipSetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	var editable OwnershipSetEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&set).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipSetResponse{
			Error: &e,
		})
		return
	}

	data := newOwnershipSet(c, set)
	c.JSON(http.StatusOK, OwnershipSetResponse{Data: &data})
}

// @Summary		Delete ownership set
// @Description	Deletes an ownership set and all its shares
// @Tags			OwnershipSets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ownership-sets/{id} [delete]
func DeleteOwnershipSet(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var set models.OwnershipSet
	err = models.DB.First(&set, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Shares cannot exist without their set
	err = models.DB.
		Where(&models.OwnershipShare{OwnershipSetID: set.ID}).
		Delete(&models.OwnershipShare{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&set).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OwnershipSets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ownership-sets/{id}/shares [options]
func OptionsOwnershipShareList(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.OwnershipSet{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			OwnershipSets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shareId	path		uint64	true	"ID of the share"
// @Router			/v1/ownership-sets/{id}/shares/{shareId} [options]
func OptionsOwnershipShareDetail(c *gin.Context) {
	_, err := ownershipShareFromURI(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create ownership shares
// @Description	Creates new shares within an ownership set
// @Tags			OwnershipSets
// @Produce		json
// @Success		201		{object}	OwnershipShareCreateResponse
// @Failure		400		{object}	OwnershipShareCreateResponse
// @Failure		404		{object}	OwnershipShareCreateResponse
// @Failure		500		{object}	OwnershipShareCreateResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shares	body		[]OwnershipShareEditable	true	"OwnershipShares"
// @Router			/v1/ownership-sets/{id}/shares [post]
func CreateOwnershipShares(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareCreateResponse{
			Error: &e,
		})
		return
	}

	var set models.OwnershipSet
	err = models.DB.First(&set, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []OwnershipShareEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareCreateResponse{
			Error: &e,
		})
		return
	}

	s := http.StatusCreated
	r := OwnershipShareCreateResponse{}

	for _, editable := range editables {
		share := editable.model(set.ID)

		err = models.DB.Create(&share).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		data := newOwnershipShare(c, share)
		r.Data = append(r.Data, OwnershipShareResponse{Data: &data})
	}

	c.JSON(s, r)
}

// @Summary		Get ownership shares
// @Description	Returns the shares of an ownership set
// @Tags			OwnershipSets
// @Produce		json
// @Success		200	{object}	OwnershipShareListResponse
// @Failure		400	{object}	OwnershipShareListResponse
// @Failure		404	{object}	OwnershipShareListResponse
// @Failure		500	{object}	OwnershipShareListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/ownership-sets/{id}/shares [get]
func GetOwnershipShares(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareListResponse{
			Error: &e,
		})
		return
	}

	var set models.OwnershipSet
	err = models.DB.First(&set, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareListResponse{
			Error: &e,
		})
		return
	}

	shares, err := set.Shares(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareListResponse{
			Error: &e,
		})
		return
	}

	data := make([]OwnershipShare, 0, len(shares))
	for _, share := range shares {
		data = append(data, newOwnershipShare(c, share))
	}

	c.JSON(http.StatusOK, OwnershipShareListResponse{Data: data})
}

// @Summary		Get ownership share
// @Description	Returns a specific share of an ownership set
// @Tags			OwnershipSets
// @Produce		json
// @Success		200		{object}	OwnershipShareResponse
// @Failure		400		{object}	OwnershipShareResponse
// @Failure		404		{object}	OwnershipShareResponse
// @Failure		500		{object}	OwnershipShareResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shareId	path		uint64	true	"ID of the share"
// @Router			/v1/ownership-sets/{id}/shares/{shareId} [get]
func GetOwnershipShare(c *gin.Context) {
	share, err := ownershipShareFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareResponse{
			Error: &e,
		})
		return
	}

	data := newOwnershipShare(c, share)
	c.JSON(http.StatusOK, OwnershipShareResponse{Data: &data})
}

// @Summary		Update ownership share
// @Description	Updates an existing share. Only values to be updated need to be specified.
// @Tags			OwnershipSets
// @Accept			json
// @Produce		json
// @Success		200		{object}	OwnershipShareResponse
// @Failure		400		{object}	OwnershipShareResponse
// @Failure		404		{object}	OwnershipShareResponse
// @Failure		500		{object}	OwnershipShareResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shareId	path		uint64					true	"ID of the share"
// @Param			share	body		OwnershipShareEditable	true	"OwnershipShare"
// @Router			/v1/ownership-sets/{id}/shares/{shareId} [patch]
func UpdateOwnershipShare(c *gin.Context) {
	share, err := ownershipShareFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OwnershipShareEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareResponse{
			Error: &e,
		})
		return
	}

	var editable OwnershipShareEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&share).Select("", updateFields...).Updates(editable.model(share.OwnershipSetID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OwnershipShareResponse{
			Error: &e,
		})
		return
	}

	data := newOwnershipShare(c, share)
	c.JSON(http.StatusOK, OwnershipShareResponse{Data: &data})
}

// @Summary		Delete ownership share
// @Description	Deletes a share from an ownership set
// @Tags			OwnershipSets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shareId	path		uint64	true	"ID of the share"
// @Router			/v1/ownership-sets/{id}/shares/{shareId} [delete]
func DeleteOwnershipShare(c *gin.Context) {
	share, err := ownershipShareFromURI(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&share).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ownershipShareFromURI loads the share referenced by a nested share URI,
// verifying that it belongs to the set in the URI.
func ownershipShareFromURI(c *gin.Context) (models.OwnershipShare, error) {
	var uri OwnershipShareURI
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.OwnershipShare{}, err
	}

	err = models.DB.First(&models.OwnershipSet{}, uri.ID).Error
	if err != nil {
		return models.OwnershipShare{}, err
	}

	var share models.OwnershipShare
	err = models.DB.
		Where(&models.OwnershipShare{OwnershipSetID: uint(uri.ID)}).
		First(&share, uri.ShareID).Error
	if err != nil {
		return models.OwnershipShare{}, err
	}

	return share, nil
}
