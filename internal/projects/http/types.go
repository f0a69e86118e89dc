package http

import (
	"time"

	"github.com/americano/projectsync-web/internal/notify"
	"github.com/americano/projectsync-web/internal/projects/domain"
)

// ListState tracks one load of the list page.
type ListState string

const (
	StateIdle     ListState = "idle"
	StateLoading  ListState = "loading"
	StateRendered ListState = "rendered"
	StateErrored  ListState = "errored"
)

// tableColumns is the number of columns the projects table renders.
const tableColumns = 6

// Options carries the UI timings the controllers need.
type Options struct {
	CreateRedirectDelay time.Duration
	EditRedirectDelay   time.Duration
}

// redirect makes a page navigate to URL once Delay has passed.
type redirect struct {
	URL   string
	Delay time.Duration
}

// page is the part every template's header and toasts read.
type page struct {
	Title    string
	Toasts   []notify.Notification
	Redirect *redirect
}

type projectRow struct {
	ID                int64
	Title             string
	Status            string
	ResponsiblePerson string
	LastModified      string
	EditURL           string
	DeleteURL         string
}

type listPage struct {
	page
	State       ListState
	Loading     bool
	Rows        []projectRow
	Placeholder string
	Error       string
	Columns     int
}

type formPage struct {
	page
	Heading        string
	FormID         string
	Action         string
	Editing        bool
	ID             int64
	Input          domain.ProjectInput
	SubmitID       string
	SubmitLabel    string
	SubmitDisabled bool
}

type confirmPage struct {
	page
	Prompt notify.Prompt
}

type messagePage struct {
	page
	Message string
}

// projectForm binds the create and edit forms.
type projectForm struct {
	ID                string `form:"id"`
	Title             string `form:"title"`
	Description       string `form:"description"`
	Status            string `form:"status"`
	ResponsiblePerson string `form:"responsiblePerson"`
}

func (f projectForm) input() domain.ProjectInput {
	return domain.ProjectInput{
		Title:             f.Title,
		Description:       f.Description,
		Status:            f.Status,
		ResponsiblePerson: f.ResponsiblePerson,
	}
}
