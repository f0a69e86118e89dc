package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/domain"
	"github.com/americano/projectsync-web/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNoProjects     = "No projects found."
	msgLoadFailed     = "Could not load projects. Please try again later."
	msgDeleted        = "Project deleted successfully."
	msgDeleteNotFound = "Project not found. It may have already been deleted."
	msgDeleteFailed   = "Could not delete the project. Please try again."
	msgDeleteBusy     = "This project is already being deleted."
)

// List renders the projects table from a fresh backend fetch.
func (h *Handler) List(c *gin.Context) {
	vm := listPage{
		page:    h.newPage(c, "Projects"),
		State:   StateIdle,
		Columns: tableColumns,
	}
	h.loadProjects(c, &vm)
	c.HTML(http.StatusOK, "list.html", vm)
}

// loadProjects moves the page through loading into rendered or errored.
// Failures become a single error row. The loading flag is always cleared.
func (h *Handler) loadProjects(c *gin.Context, vm *listPage) {
	vm.State = StateLoading
	vm.Loading = true
	vm.Rows = nil
	defer func() { vm.Loading = false }()

	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.requestLogger(c).Error("failed to load projects", zap.Error(err))
		vm.State = StateErrored
		vm.Error = msgLoadFailed
		return
	}

	vm.State = StateRendered
	if len(projects) == 0 {
		vm.Placeholder = msgNoProjects
		return
	}

	vm.Rows = make([]projectRow, 0, len(projects))
	for _, p := range projects {
		vm.Rows = append(vm.Rows, newProjectRow(p))
	}
}

func newProjectRow(p domain.Project) projectRow {
	return projectRow{
		ID:                p.ID,
		Title:             p.Title,
		Status:            p.Status,
		ResponsiblePerson: p.ResponsiblePerson,
		LastModified:      web.FormatDate(p.LastModifiedDate),
		EditURL:           fmt.Sprintf("/projects/edit?id=%d", p.ID),
		DeleteURL:         fmt.Sprintf("/projects/%d/delete?title=%s", p.ID, url.QueryEscape(p.Title)),
	}
}

// ConfirmDelete asks before deleting. Nothing is removed until the prompt is answered.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id := parseID(c.Param("id"))
	if id == 0 {
		h.presenter.Flash(c, h.presenter.Notification("Invalid project id.", notify.ColorError))
		c.Redirect(http.StatusSeeOther, listURL)
		return
	}

	vm := confirmPage{
		page:   h.newPage(c, "Delete project"),
		Prompt: notify.DeletePrompt(id, c.Query("title"), fmt.Sprintf("/projects/%d/delete", id)),
	}
	c.HTML(http.StatusOK, "confirm.html", vm)
}

// Delete acts on the prompt's answer. Only a confirmed answer reaches the backend.
func (h *Handler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	if id == 0 {
		h.presenter.Flash(c, h.presenter.Notification("Invalid project id.", notify.ColorError))
		c.Redirect(http.StatusSeeOther, listURL)
		return
	}

	if notify.ParseDecision(c.PostForm("decision")) != notify.Confirmed {
		c.Redirect(http.StatusSeeOther, listURL)
		return
	}

	h.executeDelete(c, id)
}

// executeDelete removes the project. Success reloads the list through a
// redirect. Failures are reported in place and the list is not reloaded.
func (h *Handler) executeDelete(c *gin.Context, id int64) {
	err := h.svc.Delete(c.Request.Context(), id)
	if err == nil {
		h.presenter.Flash(c, h.presenter.Notification(msgDeleted, notify.ColorSuccess))
		c.Redirect(http.StatusSeeOther, listURL)
		return
	}

	log := h.requestLogger(c).With(zap.Int64("project_id", id))
	status, msg := http.StatusBadGateway, msgDeleteFailed
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, msgDeleteNotFound
		log.Info("delete of missing project", zap.Error(err))
	case errors.Is(err, domain.ErrInFlight):
		status, msg = http.StatusConflict, msgDeleteBusy
		log.Warn("duplicate delete rejected")
	default:
		log.Error("failed to delete project", zap.Error(err))
	}

	vm := messagePage{page: h.newPage(c, "Delete project"), Message: msg}
	h.toast(&vm.page, msg, notify.ColorError)
	c.HTML(status, "message.html", vm)
}
