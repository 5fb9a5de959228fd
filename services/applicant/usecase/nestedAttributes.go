package usecase

import (
	"applicants/domain"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// planReferences turns the submitted groups into reference actions, in submitted order,
// and validates the groups that survive. Destroyed groups are never validated.
func planReferences(groups []domain.PersonalReferenceAttributes) ([]domain.ReferenceAction, []domain.FieldError) {
	var actions []domain.ReferenceAction
	var errs []domain.FieldError
	deleted := map[int]bool{}

	for i, g := range groups {
		if g.Destroy {
			// removal is idempotent, a reference listed twice is deleted once
			if !g.IsNew() && !deleted[*g.ID] {
				deleted[*g.ID] = true
				actions = append(actions, domain.DeleteReference{ID: *g.ID})
			}
			continue
		}
		// an untouched blank block on a new form is not a reference
		if g.IsNew() && g.AllBlank() {
			continue
		}

		trimmed := g
		trimmed.Name = strings.TrimSpace(g.Name)
		errs = append(errs, validateStruct(trimmed, fmt.Sprintf("personal_references[%d].", i))...)

		if g.IsNew() {
			actions = append(actions, domain.CreateReference{Name: g.Name, EmailAddress: g.EmailAddress})
		} else {
			actions = append(actions, domain.UpdateReference{ID: *g.ID, Name: g.Name, EmailAddress: g.EmailAddress})
		}
	}

	return actions, errs
}

func validateApplicant(attrs domain.ApplicantAttributes) []domain.FieldError {
	trimmed := attrs
	trimmed.Name = strings.TrimSpace(attrs.Name)
	return validateStruct(trimmed, "")
}

func validateStruct(s interface{}, prefix string) []domain.FieldError {
	ok, err := govalidator.ValidateStruct(s)
	if ok || err == nil {
		return nil
	}
	return fieldErrors(err, prefix)
}

func fieldErrors(err error, prefix string) []domain.FieldError {
	switch e := err.(type) {
	case govalidator.Errors:
		var out []domain.FieldError
		for _, inner := range e.Errors() {
			out = append(out, fieldErrors(inner, prefix)...)
		}
		return out
	case govalidator.Error:
		return []domain.FieldError{{Attribute: prefix + govalidator.CamelCaseToUnderscore(e.Name), Message: e.Err.Error()}}
	}
	return []domain.FieldError{{Attribute: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
}
