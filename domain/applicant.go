package domain

import (
	"context"
	"time"
)

type Applicant struct {
	ID                 int                 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string              `gorm:"type:varchar(255);not null" json:"name" valid:"required~Name can't be blank"`
	PersonalReferences []PersonalReference `gorm:"foreignKey:ApplicantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"personal_references" valid:"-"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// ApplicantAttributes is the submitted shape of an applicant form, parent fields plus the
// ordered reference groups exactly as the user entered them.
type ApplicantAttributes struct {
	Name                         string                        `json:"name" valid:"required~Name can't be blank"`
	PersonalReferencesAttributes []PersonalReferenceAttributes `json:"personal_references_attributes" valid:"-"`
}

type ApplicantRepo interface {
	GetAllApplicants(ctx context.Context) (*[]Applicant, error)
	GetApplicantByID(ctx context.Context, id int) (*Applicant, error)
	// CreateApplicant and UpdateApplicant write the applicant and apply every reference
	// action in the same transaction. UpdateApplicant never inserts a parent.
	CreateApplicant(ctx context.Context, applicant *Applicant, actions []ReferenceAction) (*Applicant, error)
	UpdateApplicant(ctx context.Context, applicant *Applicant, actions []ReferenceAction) (*Applicant, error)
	DeleteApplicant(ctx context.Context, id int) error
}

type ApplicantUseCase interface {
	GetAllApplicants(ctx context.Context) (*[]Applicant, error)
	GetApplicantByID(ctx context.Context, id int) (*Applicant, error)
	CreateApplicant(ctx context.Context, attrs ApplicantAttributes) (*SaveResult, error)
	UpdateApplicant(ctx context.Context, id int, attrs ApplicantAttributes) (*SaveResult, error)
	DeleteApplicant(ctx context.Context, id int) error

	ImportApplicants(ctx context.Context, payload *[]ApplicantAttributes) (*ImportSummary, error)
}

type ImportSummary struct {
	Created  int      `json:"created"`
	Failures []string `json:"failures"`
}
