package notify

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookie = "psw_session"
	sessionKey    = "flash_session"
)

// Presenter raises notifications for the current browser session.
type Presenter struct {
	store    Store
	duration time.Duration
	logger   *zap.Logger
}

func NewPresenter(store Store, duration time.Duration, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{store: store, duration: duration, logger: logger}
}

// Store exposes the backing flash store (used by the health check).
func (p *Presenter) Store() Store {
	return p.store
}

// Notification builds a toast with the presenter's default duration.
func (p *Presenter) Notification(text, color string) Notification {
	return New(text, color, p.duration)
}

// Session makes sure every browser carries a flash session cookie.
func (p *Presenter) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// Flash parks a notification for the next page this browser renders.
// A store failure is logged and the notification dropped.
func (p *Presenter) Flash(c *gin.Context, n Notification) {
	sid := c.GetString(sessionKey)
	if sid == "" {
		return
	}
	if err := p.store.Push(c.Request.Context(), sid, n); err != nil {
		p.logger.Warn("flash push failed", zap.String("session", sid), zap.Error(err))
	}
}

// Drain returns and clears the notifications pending for this browser.
func (p *Presenter) Drain(c *gin.Context) []Notification {
	sid := c.GetString(sessionKey)
	if sid == "" {
		return nil
	}
	items, err := p.store.Pop(c.Request.Context(), sid)
	if err != nil {
		p.logger.Warn("flash pop failed", zap.String("session", sid), zap.Error(err))
		return nil
	}
	return items
}
