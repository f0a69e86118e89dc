// Package backendtest runs an in-memory projects backend for tests.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/americano/projectsync-web/internal/projects/domain"
	"github.com/gin-gonic/gin"
)

// Canned is a forced response for one HTTP method.
type Canned struct {
	Status int
	Body   string
}

// Server is a stateful fake of the projects REST API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	projects map[int64]domain.Project
	nextID   int64
	canned   map[string]Canned
	bodies   map[string][]byte
	calls    map[string]int
	hold     chan struct{}
}

// New starts a fake backend seeded with projects. It is closed on test cleanup.
func New(t testing.TB, seed ...domain.Project) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		projects: make(map[int64]domain.Project),
		canned:   make(map[string]Canned),
		bodies:   make(map[string][]byte),
		calls:    make(map[string]int),
	}
	for _, p := range seed {
		s.Put(p)
	}

	r := gin.New()
	api := r.Group("/api/projects")
	api.Use(s.intercept)
	api.GET("", s.list)
	api.POST("", s.create)
	api.GET("/:id", s.get)
	api.PUT("/:id", s.update)
	api.DELETE("/:id", s.delete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Put stores p as-is, assigning an id when it has none.
func (s *Server) Put(p domain.Project) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	if p.LastModifiedDate == nil {
		now := time.Now().UTC()
		p.LastModifiedDate = &now
	}
	s.projects[p.ID] = p
	return p
}

// Respond forces every request with the given method to answer status/body.
func (s *Server) Respond(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[method] = Canned{Status: status, Body: body}
}

// Hold blocks every request until the returned release func is called.
func (s *Server) Hold() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.hold = nil
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Projects returns the stored projects ordered by id.
func (s *Server) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// LastBody returns the last request body received for method.
func (s *Server) LastBody(method string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[method]
}

// Calls returns how many requests with method reached the server.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Server) intercept(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)

	s.mu.Lock()
	s.calls[c.Request.Method]++
	if len(body) > 0 {
		s.bodies[c.Request.Method] = body
	}
	canned, forced := s.canned[c.Request.Method]
	hold := s.hold
	s.mu.Unlock()

	if hold != nil {
		<-hold
	}

	if forced {
		c.Data(canned.Status, "application/json", []byte(canned.Body))
		c.Abort()
		return
	}

	c.Set("body", body)
	c.Next()
}

func (s *Server) list(c *gin.Context) {
	s.mu.Lock()
	out := s.sortedLocked()
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) get(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	s.mu.Lock()
	p := s.projects[id]
	s.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

func (s *Server) create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	p := s.Put(fromInput(0, in))
	c.JSON(http.StatusCreated, p)
}

func (s *Server) update(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	p := s.Put(fromInput(id, in))
	c.JSON(http.StatusOK, p)
}

func (s *Server) delete(c *gin.Context) {
	id, ok := s.lookup(c)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.projects, id)
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) lookup(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}

	s.mu.Lock()
	_, exists := s.projects[id]
	s.mu.Unlock()

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Project not found with id: " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func (s *Server) sortedLocked() []domain.Project {
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func bindInput(c *gin.Context) (domain.ProjectInput, bool) {
	var in domain.ProjectInput
	raw, _ := c.Get("body")
	body, _ := raw.([]byte)
	if err := json.Unmarshal(body, &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return in, false
	}
	if strings.TrimSpace(in.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title must not empty"})
		return in, false
	}
	return in, true
}

func fromInput(id int64, in domain.ProjectInput) domain.Project {
	desc := in.Description
	now := time.Now().UTC()
	return domain.Project{
		ID:                id,
		Title:             in.Title,
		Description:       &desc,
		Status:            in.Status,
		ResponsiblePerson: in.ResponsiblePerson,
		LastModifiedDate:  &now,
	}
}
