package delivery

import (
	"applicants/domain"
	"applicants/services/applicant/form"
	"fmt"
	"strconv"
)

const newRecordPlaceholder = "NEW_RECORD"

type referenceView struct {
	Index        string
	ID           string
	Name         string
	EmailAddress string
	Destroy      bool
}

type formView struct {
	ApplicantID   int
	Action        string
	Method        string
	SubmitLabel   string
	Name          string
	Blocks        []referenceView
	TemplateBlock referenceView
	NextIndex     int
	Errors        []domain.FieldError
	ErrorHeadline string
}

func newFormView(applicantID int, name string, editor *form.ReferenceEditor) formView {
	v := formView{
		ApplicantID:   applicantID,
		Action:        "/applicants",
		SubmitLabel:   "Create Applicant",
		Name:          name,
		NextIndex:     editor.NextIndex(),
		TemplateBlock: referenceView{Index: newRecordPlaceholder},
	}
	if applicantID != 0 {
		v.Action = fmt.Sprintf("/applicants/%d", applicantID)
		v.Method = "patch"
		v.SubmitLabel = "Update Applicant"
	}

	for _, b := range editor.Blocks() {
		v.Blocks = append(v.Blocks, referenceView{
			Index:        strconv.Itoa(b.Index),
			ID:           b.IDValue(),
			Name:         b.Name,
			EmailAddress: b.EmailAddress,
			Destroy:      b.Destroy,
		})
	}
	return v
}

func (v formView) withErrors(verr *domain.ValidationError) formView {
	v.Errors = verr.Errors
	v.ErrorHeadline = verr.Error()
	return v
}
