package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register attaches the page routes. mutate wraps every form post.
func (h *Handler) Register(r gin.IRouter, mutate ...gin.HandlerFunc) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, listURL) })

	pages := r.Group("/projects")
	pages.GET("", h.List)
	pages.GET("/new", h.NewForm)
	pages.GET("/edit", h.EditForm)
	pages.GET("/:id/delete", h.ConfirmDelete)

	posts := pages.Group("", mutate...)
	posts.POST("/new", h.Create)
	posts.POST("/edit", h.Update)
	posts.POST("/:id/delete", h.Delete)
}
