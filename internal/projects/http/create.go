package http

import (
	"errors"
	"net/http"

	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgCreated      = "Successful!"
	msgCreateFailed = "Error creating project"
)

func (h *Handler) createForm(c *gin.Context) formPage {
	return formPage{
		page:        h.newPage(c, "New project"),
		Heading:     "New project",
		FormID:      "projectForm",
		Action:      "/projects/new",
		SubmitID:    "btnCreate",
		SubmitLabel: "Create",
	}
}

// NewForm renders an empty create form.
func (h *Handler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", h.createForm(c))
}

// Create submits a new project. On success the form is cleared and the page
// moves on to the list after a short delay. On failure the user's input is kept.
func (h *Handler) Create(c *gin.Context) {
	var form projectForm
	_ = c.ShouldBind(&form)
	vm := h.createForm(c)

	p, err := h.svc.Create(c.Request.Context(), form.input())
	if err != nil {
		h.requestLogger(c).Warn("failed to create project", zap.Error(err))

		vm.Input = form.input()
		msg := msgCreateFailed
		status := http.StatusBadGateway

		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				msg = msgCreateFailed + ": " + apiErr.Message
			}
			if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				status = apiErr.StatusCode
			}
		}

		h.toast(&vm.page, msg, notify.ColorError)
		c.HTML(status, "form.html", vm)
		return
	}

	h.requestLogger(c).Info("project created", zap.Int64("project_id", p.ID))

	h.toast(&vm.page, msgCreated, notify.ColorSuccess)
	vm.SubmitDisabled = true
	vm.Redirect = &redirect{URL: listURL, Delay: h.opts.CreateRedirectDelay}
	c.HTML(http.StatusCreated, "form.html", vm)
}
