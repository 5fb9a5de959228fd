package usecase

import (
	"applicants/domain"
	"applicants/metrics"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	opCreate = "create"
	opUpdate = "update"
)

type applicantUseCase struct {
	repo    domain.ApplicantRepo
	TimeOut time.Duration
	log     *logrus.Logger
}

func NewApplicantUseCase(repo domain.ApplicantRepo, to time.Duration, log *logrus.Logger) domain.ApplicantUseCase {
	return &applicantUseCase{
		repo:    repo,
		TimeOut: to,
		log:     log,
	}
}

func (auc *applicantUseCase) GetAllApplicants(ctx context.Context) (*[]domain.Applicant, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	v, err := auc.repo.GetAllApplicants(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (auc *applicantUseCase) GetApplicantByID(ctx context.Context, id int) (*domain.Applicant, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	v, err := auc.repo.GetApplicantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (auc *applicantUseCase) CreateApplicant(ctx context.Context, attrs domain.ApplicantAttributes) (*domain.SaveResult, error) {
	return auc.save(ctx, opCreate, 0, attrs)
}

func (auc *applicantUseCase) UpdateApplicant(ctx context.Context, id int, attrs domain.ApplicantAttributes) (*domain.SaveResult, error) {
	return auc.save(ctx, opUpdate, id, attrs)
}

func (auc *applicantUseCase) DeleteApplicant(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	if err := auc.repo.DeleteApplicant(ctx, id); err != nil {
		return err
	}
	auc.log.WithField("applicant_id", id).Info("applicant destroyed")
	return nil
}

// save runs one attempt through Collecting -> Validating -> Committed | RolledBack.
// Nothing reaches the repository unless every check passed. An update resolves its
// applicant first so a missing one is reported as not found, not as invalid input.
func (auc *applicantUseCase) save(ctx context.Context, op string, id int, attrs domain.ApplicantAttributes) (*domain.SaveResult, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	result := &domain.SaveResult{
		State:      domain.SaveCollecting,
		Attributes: echoAttributes(attrs),
	}

	if op == opUpdate {
		if err := auc.resolveApplicant(ctx, id); err != nil {
			auc.rollBack(result, op, failureKind(err), err)
			return result, err
		}
	}
	actions, referenceErrs := planReferences(attrs.PersonalReferencesAttributes)

	result.State = domain.SaveValidating
	errs := append(validateApplicant(attrs), referenceErrs...)
	if len(errs) > 0 {
		verr := &domain.ValidationError{Errors: errs}
		result.Errors = errs
		auc.rollBack(result, op, "validation", verr)
		return result, verr
	}

	var saved *domain.Applicant
	var err error
	if op == opUpdate {
		saved, err = auc.repo.UpdateApplicant(ctx, &domain.Applicant{ID: id, Name: attrs.Name}, actions)
	} else {
		saved, err = auc.repo.CreateApplicant(ctx, &domain.Applicant{Name: attrs.Name}, actions)
	}
	if err != nil {
		auc.rollBack(result, op, failureKind(err), err)
		return result, err
	}

	result.State = domain.SaveCommitted
	result.Status = "success"
	result.Message = fmt.Sprintf("Applicant was successfully %sd", op)
	result.Applicant = saved

	metrics.ApplicantSaves.WithLabelValues(op, metrics.OutcomeCommitted).Inc()
	countActions(actions)
	auc.log.WithFields(logrus.Fields{
		"operation":    op,
		"applicant_id": saved.ID,
		"references":   len(saved.PersonalReferences),
	}).Info("applicant saved")

	return result, nil
}

func (auc *applicantUseCase) resolveApplicant(ctx context.Context, id int) error {
	if id <= 0 {
		return &domain.NotFoundError{Resource: "Applicant", ID: id}
	}
	_, err := auc.repo.GetApplicantByID(ctx, id)
	return err
}

func failureKind(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "not_found"
	}
	return "persistence"
}

func (auc *applicantUseCase) rollBack(result *domain.SaveResult, op, kind string, err error) {
	result.State = domain.SaveRolledBack
	result.Status = "failure"
	result.Message = err.Error()

	metrics.ApplicantSaves.WithLabelValues(op, metrics.OutcomeRolledBack).Inc()
	metrics.ApplicantSaveErrors.WithLabelValues(kind).Inc()
	auc.log.WithFields(logrus.Fields{
		"operation": op,
		"kind":      kind,
		"errors":    len(result.Errors),
	}).Warn(err.Error())
}

// ImportApplicants saves each applicant as its own aggregate. Validation failures are
// collected and the remaining applicants still go through.
func (auc *applicantUseCase) ImportApplicants(ctx context.Context, payload *[]domain.ApplicantAttributes) (*domain.ImportSummary, error) {
	summary := &domain.ImportSummary{Failures: []string{}}

	for _, attrs := range *payload {
		_, err := auc.CreateApplicant(ctx, attrs)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				summary.Failures = append(summary.Failures, fmt.Sprintf("applicant %q: %s", attrs.Name, strings.Join(verr.Messages(), ", ")))
				continue
			}
			return summary, fmt.Errorf("failed to import applicant %q: %w", attrs.Name, err)
		}
		summary.Created++
	}

	return summary, nil
}

func countActions(actions []domain.ReferenceAction) {
	for _, a := range actions {
		switch a.(type) {
		case domain.CreateReference:
			metrics.ReferenceActions.WithLabelValues("create").Inc()
		case domain.UpdateReference:
			metrics.ReferenceActions.WithLabelValues("update").Inc()
		case domain.DeleteReference:
			metrics.ReferenceActions.WithLabelValues("delete").Inc()
		}
	}
}

func echoAttributes(attrs domain.ApplicantAttributes) domain.ApplicantAttributes {
	groups := make([]domain.PersonalReferenceAttributes, len(attrs.PersonalReferencesAttributes))
	copy(groups, attrs.PersonalReferencesAttributes)
	attrs.PersonalReferencesAttributes = groups
	return attrs
}
