package repository

import (
	"applicants/config"
	"applicants/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection, otherwise every new connection gets its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

func seedApplicant(t *testing.T, repo domain.ApplicantRepo, name string, refs ...domain.CreateReference) *domain.Applicant {
	t.Helper()

	actions := make([]domain.ReferenceAction, 0, len(refs))
	for _, r := range refs {
		actions = append(actions, r)
	}
	saved, err := repo.CreateApplicant(context.Background(), &domain.Applicant{Name: name}, actions)
	require.NoError(t, err)
	return saved
}

func TestCreateApplicant_CreatesParentAndReferences(t *testing.T) {
	repo := NewApplicantRepository(newTestDB(t))

	saved := seedApplicant(t, repo, "New Applicant",
		domain.CreateReference{Name: "Friend", EmailAddress: "friend@example.com"},
		domain.CreateReference{Name: "Enemy", EmailAddress: "enemy@example.com"},
	)

	assert.NotZero(t, saved.ID)
	assert.Equal(t, "New Applicant", saved.Name)
	require.Len(t, saved.PersonalReferences, 2)
	assert.Equal(t, "Friend", saved.PersonalReferences[0].Name)
	assert.Equal(t, "enemy@example.com", saved.PersonalReferences[1].EmailAddress)
	assert.Equal(t, saved.ID, saved.PersonalReferences[1].ApplicantID)
}

func TestUpdateApplicant_AppliesMixedActions(t *testing.T) {
	repo := NewApplicantRepository(newTestDB(t))
	existing := seedApplicant(t, repo, "Ada",
		domain.CreateReference{Name: "Keep", EmailAddress: "keep@example.com"},
		domain.CreateReference{Name: "Drop", EmailAddress: "drop@example.com"},
	)
	keepID := existing.PersonalReferences[0].ID
	dropID := existing.PersonalReferences[1].ID

	saved, err := repo.UpdateApplicant(context.Background(), &domain.Applicant{ID: existing.ID, Name: "Ada Lovelace"}, []domain.ReferenceAction{
		domain.UpdateReference{ID: keepID, Name: "Kept", EmailAddress: "kept@example.com"},
		domain.DeleteReference{ID: dropID},
		domain.CreateReference{Name: "Added", EmailAddress: "added@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", saved.Name)
	require.Len(t, saved.PersonalReferences, 2)
	assert.Equal(t, keepID, saved.PersonalReferences[0].ID)
	assert.Equal(t, "kept@example.com", saved.PersonalReferences[0].EmailAddress)
	assert.Equal(t, "Added", saved.PersonalReferences[1].Name)
}

func TestUpdateApplicant_ForeignReferenceRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ada := seedApplicant(t, repo, "Ada")
	grace := seedApplicant(t, repo, "Grace", domain.CreateReference{Name: "Theirs", EmailAddress: "theirs@example.com"})

	_, err := repo.UpdateApplicant(context.Background(), &domain.Applicant{ID: ada.ID, Name: "Renamed"}, []domain.ReferenceAction{
		domain.CreateReference{Name: "Sneaky", EmailAddress: "sneaky@example.com"},
		domain.DeleteReference{ID: grace.PersonalReferences[0].ID},
	})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "PersonalReference", nf.Resource)

	reloaded, err := repo.GetApplicantByID(context.Background(), ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", reloaded.Name)
	assert.Empty(t, reloaded.PersonalReferences)

	var count int64
	require.NoError(t, db.Model(&domain.PersonalReference{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateApplicant_UnknownApplicant(t *testing.T) {
	repo := NewApplicantRepository(newTestDB(t))

	_, err := repo.UpdateApplicant(context.Background(), &domain.Applicant{ID: 404, Name: "Ghost"}, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateApplicant_ZeroIDNeverInserts(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)

	_, err := repo.UpdateApplicant(context.Background(), &domain.Applicant{ID: 0, Name: "Ghost"}, []domain.ReferenceAction{
		domain.CreateReference{Name: "Friend"},
	})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Applicant", nf.Resource)

	var count int64
	require.NoError(t, db.Model(&domain.Applicant{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.PersonalReference{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateApplicant_ReferencesComeBackInIDOrder(t *testing.T) {
	repo := NewApplicantRepository(newTestDB(t))
	existing := seedApplicant(t, repo, "Ada",
		domain.CreateReference{Name: "First"},
		domain.CreateReference{Name: "Second"},
	)
	firstID := existing.PersonalReferences[0].ID
	secondID := existing.PersonalReferences[1].ID

	// the new reference is submitted ahead of the existing ones
	saved, err := repo.UpdateApplicant(context.Background(), &domain.Applicant{ID: existing.ID, Name: "Ada"}, []domain.ReferenceAction{
		domain.CreateReference{Name: "Added"},
		domain.UpdateReference{ID: secondID, Name: "Second"},
		domain.UpdateReference{ID: firstID, Name: "First"},
	})
	require.NoError(t, err)

	require.Len(t, saved.PersonalReferences, 3)
	assert.Equal(t, []string{"First", "Second", "Added"}, []string{
		saved.PersonalReferences[0].Name,
		saved.PersonalReferences[1].Name,
		saved.PersonalReferences[2].Name,
	})
	assert.Less(t, saved.PersonalReferences[1].ID, saved.PersonalReferences[2].ID)
}

func TestDeleteApplicant_CascadesToReferences(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicantRepository(db)
	ada := seedApplicant(t, repo, "Ada",
		domain.CreateReference{Name: "Friend", EmailAddress: "friend@example.com"},
	)
	grace := seedApplicant(t, repo, "Grace",
		domain.CreateReference{Name: "Mentor", EmailAddress: "mentor@example.com"},
	)

	require.NoError(t, repo.DeleteApplicant(context.Background(), ada.ID))

	_, err := repo.GetApplicantByID(context.Background(), ada.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var refs []domain.PersonalReference
	require.NoError(t, db.Find(&refs).Error)
	require.Len(t, refs, 1)
	assert.Equal(t, grace.ID, refs[0].ApplicantID)

	assert.ErrorIs(t, repo.DeleteApplicant(context.Background(), ada.ID), domain.ErrNotFound)
}

func TestGetAllApplicants_OrderedWithReferences(t *testing.T) {
	repo := NewApplicantRepository(newTestDB(t))
	seedApplicant(t, repo, "First", domain.CreateReference{Name: "A", EmailAddress: "a@example.com"})
	seedApplicant(t, repo, "Second")

	all, err := repo.GetAllApplicants(context.Background())
	require.NoError(t, err)

	require.Len(t, *all, 2)
	assert.Equal(t, "First", (*all)[0].Name)
	assert.Len(t, (*all)[0].PersonalReferences, 1)
	assert.Empty(t, (*all)[1].PersonalReferences)
}
