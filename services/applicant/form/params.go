package form

import (
	"applicants/domain"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	ParamName          = "applicant[name]"
	ParamAddBlock      = "add_reference"
	ParamRemoveBlock   = "destroy_reference"
	referenceParamRoot = "applicant[personal_references_attributes]"
)

var referenceParam = regexp.MustCompile(`^applicant\[personal_references_attributes\]\[(\d+)\]\[(id|name|email_address|_destroy)\]$`)

type Command int

const (
	CommandSave Command = iota
	CommandAddBlock
	CommandRemoveBlock
)

// Submission is a decoded applicant form post.
type Submission struct {
	Name        string
	Editor      *ReferenceEditor
	Command     Command
	RemoveIndex int
}

// ReferenceFieldName builds the input name for a block field, e.g.
// applicant[personal_references_attributes][0][email_address].
func ReferenceFieldName(index int, field string) string {
	return fmt.Sprintf("%s[%d][%s]", referenceParamRoot, index, field)
}

// ParseSubmission decodes nested form values. Groups are ordered by their numeric
// index; gaps in the numbering are fine.
func ParseSubmission(values url.Values) (*Submission, error) {
	sub := &Submission{
		Name:    values.Get(ParamName),
		Editor:  &ReferenceEditor{},
		Command: CommandSave,
	}

	groups := make(map[int]*ReferenceBlock)
	for key, vals := range values {
		m := referenceParam.FindStringSubmatch(key)
		if m == nil || len(vals) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid reference index %q: %w", m[1], err)
		}
		b, ok := groups[idx]
		if !ok {
			b = &ReferenceBlock{Index: idx}
			groups[idx] = b
		}
		// last value wins, the way a hidden "0" followed by a "1" would
		v := vals[len(vals)-1]
		switch m[2] {
		case "id":
			if strings.TrimSpace(v) == "" {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid personal reference id %q", v)
			}
			b.ID = &id
		case "name":
			b.Name = v
		case "email_address":
			b.EmailAddress = v
		case "_destroy":
			b.Destroy = domain.ParseFlag(v)
		}
	}

	indices := make([]int, 0, len(groups))
	for idx := range groups {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		sub.Editor.insert(*groups[idx])
	}

	if values.Has(ParamAddBlock) {
		sub.Command = CommandAddBlock
	} else if v := values.Get(ParamRemoveBlock); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid block index %q: %w", v, err)
		}
		sub.Command = CommandRemoveBlock
		sub.RemoveIndex = idx
	}

	return sub, nil
}

// Apply runs an add or remove command against the editor. It reports false for a
// plain save, which the caller has to hand to the usecase instead.
func (s *Submission) Apply() bool {
	switch s.Command {
	case CommandAddBlock:
		s.Editor.AddBlock()
		return true
	case CommandRemoveBlock:
		s.Editor.MarkForRemoval(s.RemoveIndex)
		return true
	}
	return false
}

func (s *Submission) Attributes() domain.ApplicantAttributes {
	return domain.ApplicantAttributes{
		Name:                         s.Name,
		PersonalReferencesAttributes: s.Editor.Attributes(),
	}
}
