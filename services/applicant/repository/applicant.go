package repository

import (
	"applicants/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(database *gorm.DB) domain.ApplicantRepo {
	return &applicantRepository{
		db: database,
	}
}

func orderedReferences(db *gorm.DB) *gorm.DB {
	return db.Order("personal_references.id ASC")
}

func (ar *applicantRepository) GetAllApplicants(ctx context.Context) (*[]domain.Applicant, error) {
	var applicants []domain.Applicant

	err := ar.db.WithContext(ctx).
		Preload("PersonalReferences", orderedReferences).
		Order("id ASC").
		Find(&applicants).Error
	if err != nil {
		return nil, persistenceError("list applicants", err)
	}

	return &applicants, nil
}

func (ar *applicantRepository) GetApplicantByID(ctx context.Context, id int) (*domain.Applicant, error) {
	applicant, err := findApplicant(ar.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return applicant, nil
}

func (ar *applicantRepository) CreateApplicant(ctx context.Context, applicant *domain.Applicant, actions []domain.ReferenceAction) (*domain.Applicant, error) {
	return ar.saveApplicant(ctx, actions, func(tx *gorm.DB, now time.Time) (int, error) {
		record := domain.Applicant{Name: applicant.Name, CreatedAt: now, UpdatedAt: now}
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return 0, persistenceError("insert applicant", err)
		}
		return record.ID, nil
	})
}

func (ar *applicantRepository) UpdateApplicant(ctx context.Context, applicant *domain.Applicant, actions []domain.ReferenceAction) (*domain.Applicant, error) {
	if applicant.ID <= 0 {
		return nil, &domain.NotFoundError{Resource: "Applicant", ID: applicant.ID}
	}

	return ar.saveApplicant(ctx, actions, func(tx *gorm.DB, now time.Time) (int, error) {
		res := tx.Model(&domain.Applicant{}).
			Where("id = ?", applicant.ID).
			Updates(map[string]interface{}{"name": applicant.Name, "updated_at": now})
		if res.Error != nil {
			return 0, persistenceError("update applicant", res.Error)
		}
		if res.RowsAffected == 0 {
			return 0, &domain.NotFoundError{Resource: "Applicant", ID: applicant.ID}
		}
		return applicant.ID, nil
	})
}

// saveApplicant runs writeParent and every reference action in one transaction.
// Any failure rolls the whole thing back.
func (ar *applicantRepository) saveApplicant(ctx context.Context, actions []domain.ReferenceAction, writeParent func(tx *gorm.DB, now time.Time) (int, error)) (*domain.Applicant, error) {
	var saved *domain.Applicant

	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		id, err := writeParent(tx, now)
		if err != nil {
			return err
		}

		for _, action := range actions {
			if err := applyReferenceAction(tx, id, action, now); err != nil {
				return err
			}
		}

		saved, err = findApplicant(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func applyReferenceAction(tx *gorm.DB, applicantID int, action domain.ReferenceAction, now time.Time) error {
	switch a := action.(type) {
	case domain.CreateReference:
		ref := domain.PersonalReference{
			ApplicantID:  applicantID,
			Name:         a.Name,
			EmailAddress: a.EmailAddress,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&ref).Error; err != nil {
			return persistenceError("insert personal reference", err)
		}

	case domain.UpdateReference:
		res := tx.Model(&domain.PersonalReference{}).
			Where("id = ? AND applicant_id = ?", a.ID, applicantID).
			Updates(map[string]interface{}{
				"name":          a.Name,
				"email_address": a.EmailAddress,
				"updated_at":    now,
			})
		if res.Error != nil {
			return persistenceError("update personal reference", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Resource: "PersonalReference", ID: a.ID}
		}

	case domain.DeleteReference:
		res := tx.Where("id = ? AND applicant_id = ?", a.ID, applicantID).Delete(&domain.PersonalReference{})
		if res.Error != nil {
			return persistenceError("delete personal reference", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Resource: "PersonalReference", ID: a.ID}
		}

	default:
		return fmt.Errorf("unknown reference action %T", action)
	}

	return nil
}

func (ar *applicantRepository) DeleteApplicant(ctx context.Context, id int) error {
	return ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// children go first so stores without ON DELETE CASCADE behave the same
		if err := tx.Where("applicant_id = ?", id).Delete(&domain.PersonalReference{}).Error; err != nil {
			return persistenceError("delete personal references", err)
		}

		res := tx.Where("id = ?", id).Delete(&domain.Applicant{})
		if res.Error != nil {
			return persistenceError("delete applicant", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Resource: "Applicant", ID: id}
		}
		return nil
	})
}

func findApplicant(db *gorm.DB, id int) (*domain.Applicant, error) {
	var applicant domain.Applicant

	err := db.Preload("PersonalReferences", orderedReferences).
		Where("id = ?", id).
		First(&applicant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: "Applicant", ID: id}
		}
		return nil, persistenceError("find applicant", err)
	}

	return &applicant, nil
}

func persistenceError(op string, err error) error {
	perr := &domain.PersistenceError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		perr.Code = pgErr.Code
	}
	return perr
}
