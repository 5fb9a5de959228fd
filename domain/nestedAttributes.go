package domain

import "strings"

// ReferenceAction is what a single submitted reference group turns into once it has
// been planned: one of CreateReference, UpdateReference or DeleteReference.
type ReferenceAction interface {
	isReferenceAction()
}

type CreateReference struct {
	Name         string
	EmailAddress string
}

type UpdateReference struct {
	ID           int
	Name         string
	EmailAddress string
}

type DeleteReference struct {
	ID int
}

func (CreateReference) isReferenceAction() {}
func (UpdateReference) isReferenceAction() {}
func (DeleteReference) isReferenceAction() {}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseFlag reads a form or JSON checkbox value such as "1", "true" or "on".
func ParseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "on", "yes":
		return true
	}
	return false
}
