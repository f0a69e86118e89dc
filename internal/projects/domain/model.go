package domain

import "time"

// StatusActive is the status every new project starts in.
const StatusActive = "Active"

// Project mirrors the backend's project resource.
// ID and the timestamps are assigned by the backend and never sent back on create.
type Project struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	Status            string     `json:"status"`
	ResponsiblePerson string     `json:"responsiblePerson"`
	CreatedDate       *time.Time `json:"createdDate,omitempty"`
	LastModifiedDate  *time.Time `json:"lastModifiedDate,omitempty"`
}

// DescriptionText returns the description, or "" when the backend sent null.
func (p Project) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// ProjectInput is the request body for create and update: a project minus its id.
type ProjectInput struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	ResponsiblePerson string `json:"responsiblePerson"`
}

// Normalized returns a copy with title and responsible person word-capitalized.
// Description and status pass through untouched.
func (in ProjectInput) Normalized() ProjectInput {
	in.Title = CapitalizeEachWord(in.Title)
	in.ResponsiblePerson = CapitalizeEachWord(in.ResponsiblePerson)
	return in
}
