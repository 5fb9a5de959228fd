package form

import (
	"applicants/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorForApplicant_NewApplicantGetsOneBlankBlock(t *testing.T) {
	e := EditorForApplicant(nil)

	blocks := e.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].Index)
	assert.Nil(t, blocks[0].ID)
	assert.Empty(t, blocks[0].Name)
	assert.Equal(t, 1, e.NextIndex())
}

func TestEditorForApplicant_SeedsSavedReferences(t *testing.T) {
	applicant := &domain.Applicant{
		ID:   3,
		Name: "Ada",
		PersonalReferences: []domain.PersonalReference{
			{ID: 10, Name: "Friend", EmailAddress: "friend@example.com"},
			{ID: 11, Name: "Mentor", EmailAddress: "mentor@example.com"},
		},
	}

	blocks := EditorForApplicant(applicant).Blocks()

	require.Len(t, blocks, 2)
	assert.Equal(t, "10", blocks[0].IDValue())
	assert.Equal(t, "Mentor", blocks[1].Name)
	assert.Equal(t, 1, blocks[1].Index)
}

func TestAddBlock_IndicesNeverCollide(t *testing.T) {
	e := EditorForApplicant(nil)

	second := e.AddBlock()
	third := e.AddBlock()
	e.MarkForRemoval(second.Index)
	fourth := e.AddBlock()

	seen := map[int]bool{}
	for _, b := range e.Blocks() {
		assert.False(t, seen[b.Index], "duplicate index %d", b.Index)
		seen[b.Index] = true
	}
	assert.Equal(t, []int{1, 2, 3}, []int{second.Index, third.Index, fourth.Index})
	assert.Len(t, e.Blocks(), 4)
}

func TestMarkForRemoval_HidesButKeepsValues(t *testing.T) {
	e := EditorForApplicant(nil)
	b := e.AddBlock()
	e.blocks[1].Name = "Enemy"
	e.blocks[1].EmailAddress = "enemy@example.com"

	assert.True(t, e.MarkForRemoval(b.Index))
	assert.True(t, e.MarkForRemoval(b.Index))

	assert.Len(t, e.Visible(), 1)
	attrs := e.Attributes()
	require.Len(t, attrs, 2)
	assert.True(t, attrs[1].Destroy)
	assert.Equal(t, "Enemy", attrs[1].Name)
	assert.Equal(t, "enemy@example.com", attrs[1].EmailAddress)
}

func TestMarkForRemoval_UnknownIndex(t *testing.T) {
	e := EditorForApplicant(nil)

	assert.False(t, e.MarkForRemoval(42))
	assert.Len(t, e.Visible(), 1)
}

func TestNewReferenceEditor_RoundTripsSubmission(t *testing.T) {
	id := 7
	groups := []domain.PersonalReferenceAttributes{
		{ID: &id, Name: "Old", EmailAddress: "old@example.com", Destroy: true},
		{Name: "", EmailAddress: "friend@example.com"},
	}

	e := NewReferenceEditor(groups)

	assert.Equal(t, groups, e.Attributes())
	require.Len(t, e.Visible(), 1)
	assert.True(t, e.Blocks()[0].Hidden())
}
