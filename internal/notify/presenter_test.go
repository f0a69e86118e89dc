package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenterRouter(p *Presenter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(p.Session())
	r.POST("/flash", func(c *gin.Context) {
		p.Flash(c, p.Notification(c.Query("text"), ColorSuccess))
		c.Status(http.StatusNoContent)
	})
	r.GET("/drain", func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Drain(c))
	})
	return r
}

func TestPresenter_FlashSurvivesRedirect(t *testing.T) {
	p := NewPresenter(NewMemoryStore(time.Minute), 2*time.Second, nil)
	r := newPresenterRouter(p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flash?text=Successful!", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/drain", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `[{"text":"Successful!","color":"#a7c957","duration_ms":2000}]`, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "existing session is reused")

	req = httptest.NewRequest(http.MethodGet, "/drain", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPresenter_SessionsAreIsolated(t *testing.T) {
	p := NewPresenter(NewMemoryStore(time.Minute), time.Second, nil)
	r := newPresenterRouter(p)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flash?text=mine", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drain", nil))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPresenter_RejectsForgedSession(t *testing.T) {
	p := NewPresenter(NewMemoryStore(time.Minute), time.Second, nil)
	r := newPresenterRouter(p)

	req := httptest.NewRequest(http.MethodGet, "/drain", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "../../etc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "../../etc", cookies[0].Value)
}

func TestParseDecision(t *testing.T) {
	assert.Equal(t, Confirmed, ParseDecision("confirm"))
	assert.Equal(t, Cancelled, ParseDecision("cancel"))
	assert.Equal(t, Cancelled, ParseDecision(""))
	assert.Equal(t, Cancelled, ParseDecision("CONFIRM"))
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "cancelled", Cancelled.String())
}

func TestDeletePrompt(t *testing.T) {
	p := DeletePrompt(4, "Apollo", "/projects/4/delete")
	assert.Equal(t, `Delete project "Apollo"? This cannot be undone.`, p.Message)
	assert.Equal(t, "/projects/4/delete", p.Action)

	p = DeletePrompt(4, "", "/projects/4/delete")
	assert.Equal(t, "Delete project #4? This cannot be undone.", p.Message)
}
