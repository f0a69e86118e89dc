package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMissingID     = "Error: Project ID not found in URL."
	msgLoadNotFound  = "Failed to load project: Project not found."
	msgLoadStatus    = "Failed to load project: Error %d: Could not load project."
	msgLoadError     = "Failed to load project: Could not reach the server."
	msgUpdated       = "Project %q updated successfully!"
	msgValidation    = "Validation Error: %s"
	msgInvalidData   = "Invalid data. Check the required fields."
	msgUpdateFailed  = "Update failed: %s"
	msgUnknownStatus = "Unknown error (Status: %d)."
	msgBadResponse   = "Invalid response from server."
	msgConnection    = "Connection Failed: Could not reach the server."
	msgUpdateBusy    = "This project is already being saved."
)

func (h *Handler) editForm(c *gin.Context) formPage {
	return formPage{
		page:        h.newPage(c, "Edit project"),
		Heading:     "Edit project",
		FormID:      "editProjectForm",
		Action:      "/projects/edit",
		Editing:     true,
		SubmitID:    "btnUpdate",
		SubmitLabel: "Save Changes",
	}
}

// EditForm loads the project named by the id query parameter into the form.
// The submit button is enabled whatever the outcome of the load.
func (h *Handler) EditForm(c *gin.Context) {
	vm := h.editForm(c)

	id := parseID(c.Query("id"))
	if id == 0 {
		h.toast(&vm.page, msgMissingID, notify.ColorEditError)
		c.HTML(http.StatusBadRequest, "form.html", vm)
		return
	}
	vm.ID = id

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := loadFailure(err)
		h.requestLogger(c).Warn("failed to load project", zap.Int64("project_id", id), zap.Error(err))
		h.toast(&vm.page, msg, notify.ColorEditError)
		c.HTML(status, "form.html", vm)
		return
	}

	vm.ID = p.ID
	vm.Input = domain.ProjectInput{
		Title:             p.Title,
		Description:       p.DescriptionText(),
		Status:            p.Status,
		ResponsiblePerson: p.ResponsiblePerson,
	}
	c.HTML(http.StatusOK, "form.html", vm)
}

func loadFailure(err error) (int, string) {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgLoadNotFound
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, fmt.Sprintf(msgLoadStatus, apiErr.StatusCode)
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadGateway, "Failed to load project: " + msgBadResponse
	default:
		return http.StatusBadGateway, msgLoadError
	}
}

// Update submits the edited project. Success keeps the button disabled and
// moves on to the list. Every failure re-enables it and keeps the input.
func (h *Handler) Update(c *gin.Context) {
	var form projectForm
	_ = c.ShouldBind(&form)

	vm := h.editForm(c)
	vm.Input = form.input()

	id := parseID(form.ID)
	if id == 0 {
		h.toast(&vm.page, msgMissingID, notify.ColorEditError)
		c.HTML(http.StatusBadRequest, "form.html", vm)
		return
	}
	vm.ID = id

	p, err := h.svc.Update(c.Request.Context(), id, form.input())
	if err != nil {
		status, msg := updateFailure(err)
		log := h.requestLogger(c).With(zap.Int64("project_id", id), zap.Error(err))
		if status >= http.StatusInternalServerError {
			log.Error("failed to update project")
		} else {
			log.Info("project update rejected")
		}
		h.toast(&vm.page, msg, notify.ColorEditError)
		c.HTML(status, "form.html", vm)
		return
	}

	h.requestLogger(c).Info("project updated", zap.Int64("project_id", id))

	vm.Input = domain.ProjectInput{
		Title:             p.Title,
		Description:       p.DescriptionText(),
		Status:            p.Status,
		ResponsiblePerson: p.ResponsiblePerson,
	}
	h.toast(&vm.page, fmt.Sprintf(msgUpdated, p.Title), notify.ColorEditSuccess)
	vm.SubmitDisabled = true
	vm.Redirect = &redirect{URL: listURL, Delay: h.opts.EditRedirectDelay}
	c.HTML(http.StatusOK, "form.html", vm)
}

func updateFailure(err error) (int, string) {
	var apiErr *domain.APIError
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest, fmt.Sprintf(msgValidation, fieldErr.Message)
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest:
		return http.StatusBadRequest, fmt.Sprintf(msgValidation, apiErr.MessageOr(msgInvalidData))
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		return status, fmt.Sprintf(msgUpdateFailed, apiErr.MessageOr(fmt.Sprintf(msgUnknownStatus, apiErr.StatusCode)))
	case errors.Is(err, domain.ErrInFlight):
		return http.StatusConflict, msgUpdateBusy
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadGateway, fmt.Sprintf(msgUpdateFailed, msgBadResponse)
	default:
		return http.StatusBadGateway, msgConnection
	}
}
