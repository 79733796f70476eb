package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tngo0508/simple-crud-api/internal/templates"
)

// RegisterTemplateRoutes mounts the mold-cost template endpoints on rg (the /api group).
func RegisterTemplateRoutes(rg *gin.RouterGroup, svc *templates.Service) {
	rg.GET("/:userId/getAllTemplates", func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		set, err := svc.GetAllForUser(c.Request.Context(), userID)
		if err != nil {
			templateError(c, err)
			return
		}
		c.JSON(http.StatusOK, set)
	})

	rg.POST("/saveTemplate", func(c *gin.Context) {
		var req struct {
			UserID       *int64             `json:"userId"`
			SaveTemplate templates.Template `json:"saveTemplate"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.UserID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		if _, err := svc.Append(c.Request.Context(), *req.UserID, req.SaveTemplate); err != nil {
			templateError(c, err)
			return
		}
		c.JSON(http.StatusOK, "save template successfully")
	})

	rg.GET("/:userId/getTemplate", func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		name := c.Query("templateName")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "templateName is required"})
			return
		}
		tpl, err := svc.GetByName(c.Request.Context(), userID, name)
		if err != nil {
			templateError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"templates": []templates.Template{tpl}})
	})
}

func templateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, templates.ErrInvalidTemplate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, templates.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
