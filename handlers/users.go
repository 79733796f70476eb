package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tngo0508/simple-crud-api/internal/users"
)

// RegisterUserRoutes mounts the user CRUD endpoints on rg (the /api group).
func RegisterUserRoutes(rg *gin.RouterGroup, svc *users.Service) {
	rg.POST("/post", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := svc.Create(c.Request.Context(), req.Name, req.Age)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, id)
	})

	rg.GET("/getAll", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/getOne/:id", func(c *gin.Context) {
		u, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	})

	rg.PATCH("/update/:id", func(c *gin.Context) {
		var upd users.Update
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := svc.Update(c.Request.Context(), c.Param("id"), upd)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	})

	rg.DELETE("/delete/:id", func(c *gin.Context) {
		u, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			userError(c, err)
			return
		}
		c.String(http.StatusOK, "User %q has been deleted..", u.Name)
	})

	// name arrives in the JSON body (legacy client behavior); ?name= works too
	rg.GET("/getUser", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		_ = c.ShouldBindJSON(&req)
		name := req.Name
		if name == "" {
			name = c.Query("name")
		}
		list, err := svc.FindByName(c.Request.Context(), name)
		if err != nil {
			userError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})
}

// userError maps service errors onto HTTP statuses: bad ids are client errors,
// missing records are 404, anything else is a persistence failure.
func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
