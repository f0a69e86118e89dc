package notify

import "fmt"

// Outcome is the answer to a confirmation prompt.
type Outcome int

const (
	Cancelled Outcome = iota
	Confirmed
)

func (o Outcome) String() string {
	if o == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

// Form values carried by the two prompt buttons.
const (
	DecisionConfirm = "confirm"
	DecisionCancel  = "cancel"
)

// Prompt is a persistent confirm/cancel question about one record.
type Prompt struct {
	Message    string
	Action     string
	ConfirmTag string
	CancelTag  string
}

// NewPrompt builds a prompt that posts its decision to action.
func NewPrompt(message, action string) Prompt {
	return Prompt{
		Message:    message,
		Action:     action,
		ConfirmTag: DecisionConfirm,
		CancelTag:  DecisionCancel,
	}
}

// ParseDecision maps a submitted decision to exactly one outcome.
// Anything other than an explicit confirm is a cancel.
func ParseDecision(decision string) Outcome {
	if decision == DecisionConfirm {
		return Confirmed
	}
	return Cancelled
}

// DeletePrompt is the question shown before removing a project.
func DeletePrompt(id int64, title, action string) Prompt {
	if title == "" {
		return NewPrompt(fmt.Sprintf("Delete project #%d? This cannot be undone.", id), action)
	}
	return NewPrompt(fmt.Sprintf("Delete project %q? This cannot be undone.", title), action)
}
