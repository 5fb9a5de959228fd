// Package form holds the view-model behind the applicant form: the editable, ordered list
// of personal reference blocks and the decoding of nested form parameters into it.
package form

import (
	"applicants/domain"
	"strconv"
)

// ReferenceBlock is one "Personal Reference" fieldset. Removing a block only flips
// Destroy; its values stay so they are still submitted.
type ReferenceBlock struct {
	Index        int
	ID           *int
	Name         string
	EmailAddress string
	Destroy      bool
}

func (b ReferenceBlock) Hidden() bool {
	return b.Destroy
}

func (b ReferenceBlock) IDValue() string {
	if b.ID == nil {
		return ""
	}
	return strconv.Itoa(*b.ID)
}

type ReferenceEditor struct {
	blocks []ReferenceBlock
	next   int
}

func NewReferenceEditor(groups []domain.PersonalReferenceAttributes) *ReferenceEditor {
	e := &ReferenceEditor{}
	for _, g := range groups {
		e.push(ReferenceBlock{
			ID:           g.ID,
			Name:         g.Name,
			EmailAddress: g.EmailAddress,
			Destroy:      g.Destroy,
		})
	}
	return e
}

// EditorForApplicant seeds the editor from saved references. An applicant without
// references (or a new one) gets a single blank block to fill in.
func EditorForApplicant(applicant *domain.Applicant) *ReferenceEditor {
	e := &ReferenceEditor{}
	if applicant != nil {
		for _, ref := range applicant.PersonalReferences {
			id := ref.ID
			e.push(ReferenceBlock{ID: &id, Name: ref.Name, EmailAddress: ref.EmailAddress})
		}
	}
	if len(e.blocks) == 0 {
		e.AddBlock()
	}
	return e
}

func (e *ReferenceEditor) push(b ReferenceBlock) ReferenceBlock {
	b.Index = e.next
	return e.insert(b)
}

// insert keeps the block's own index; later blocks are numbered after the highest one.
func (e *ReferenceEditor) insert(b ReferenceBlock) ReferenceBlock {
	if b.Index >= e.next {
		e.next = b.Index + 1
	}
	e.blocks = append(e.blocks, b)
	return b
}

// AddBlock appends a blank block with an index no other block uses.
func (e *ReferenceEditor) AddBlock() ReferenceBlock {
	return e.push(ReferenceBlock{})
}

// MarkForRemoval flags the block with the given index for destruction. It reports
// whether such a block exists; marking twice is a no-op.
func (e *ReferenceEditor) MarkForRemoval(index int) bool {
	for i := range e.blocks {
		if e.blocks[i].Index == index {
			e.blocks[i].Destroy = true
			return true
		}
	}
	return false
}

func (e *ReferenceEditor) Blocks() []ReferenceBlock {
	out := make([]ReferenceBlock, len(e.blocks))
	copy(out, e.blocks)
	return out
}

func (e *ReferenceEditor) Visible() []ReferenceBlock {
	var out []ReferenceBlock
	for _, b := range e.blocks {
		if !b.Destroy {
			out = append(out, b)
		}
	}
	return out
}

// NextIndex is the index the next added block will get.
func (e *ReferenceEditor) NextIndex() int {
	return e.next
}

// Attributes is the payload the form submits: every block, hidden ones included.
func (e *ReferenceEditor) Attributes() []domain.PersonalReferenceAttributes {
	out := make([]domain.PersonalReferenceAttributes, 0, len(e.blocks))
	for _, b := range e.blocks {
		out = append(out, domain.PersonalReferenceAttributes{
			ID:           b.ID,
			Name:         b.Name,
			EmailAddress: b.EmailAddress,
			Destroy:      b.Destroy,
		})
	}
	return out
}
