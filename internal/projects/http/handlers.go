package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const listURL = "/projects"

// Handler bundles the view controllers for the list, create and edit pages.
type Handler struct {
	svc       *service.ProjectService
	presenter *notify.Presenter
	opts      Options
	logger    *zap.Logger
}

func New(svc *service.ProjectService, presenter *notify.Presenter, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:       svc,
		presenter: presenter,
		opts:      opts,
		logger:    logger.Named("projects"),
	}
}

// newPage starts a view-model with whatever notifications were parked for this browser.
func (h *Handler) newPage(c *gin.Context, title string) page {
	return page{Title: title, Toasts: h.presenter.Drain(c)}
}

func (h *Handler) toast(p *page, text, color string) {
	p.Toasts = append(p.Toasts, h.presenter.Notification(text, color))
}

func (h *Handler) requestLogger(c *gin.Context) *zap.Logger {
	if rid := c.GetString("request_id"); rid != "" {
		return h.logger.With(zap.String("request_id", rid))
	}
	return h.logger
}

// parseID reads a positive project id. Anything else yields 0.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// TooManyRequests answers a throttled form post.
func (h *Handler) TooManyRequests(c *gin.Context) {
	vm := messagePage{page: h.newPage(c, "Slow down"), Message: "Too many requests. Please wait a moment and try again."}
	h.toast(&vm.page, vm.Message, notify.ColorError)
	c.HTML(http.StatusTooManyRequests, "message.html", vm)
	c.Abort()
}
