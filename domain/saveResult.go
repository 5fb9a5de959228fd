package domain

import "fmt"

// SaveState tracks one save attempt: Collecting -> Validating -> Committed | RolledBack.
type SaveState int

const (
	SaveCollecting SaveState = iota
	SaveValidating
	SaveCommitted
	SaveRolledBack
)

func (s SaveState) String() string {
	switch s {
	case SaveCollecting:
		return "collecting"
	case SaveValidating:
		return "validating"
	case SaveCommitted:
		return "committed"
	case SaveRolledBack:
		return "rolled_back"
	}
	return fmt.Sprintf("SaveState(%d)", int(s))
}

type FieldError struct {
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}

// SaveResult is handed back to the view layer instead of a global flash.
// Attributes always echoes the submission, destroyed groups included, in order.
type SaveResult struct {
	State      SaveState           `json:"-"`
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	Errors     []FieldError        `json:"errors,omitempty"`
	Applicant  *Applicant          `json:"applicant,omitempty"`
	Attributes ApplicantAttributes `json:"attributes"`
}

func (r *SaveResult) Success() bool {
	return r != nil && r.State == SaveCommitted
}
