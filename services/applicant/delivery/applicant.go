package delivery

import (
	"applicants/config"
	"applicants/domain"
	"applicants/services/applicant/form"
	"applicants/views"
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

type applicantHandler struct {
	uc domain.ApplicantUseCase
}

func NewApplicantHandler(app *fiber.App, useCase domain.ApplicantUseCase) {
	handler := &applicantHandler{
		uc: useCase,
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/applicants")
	})

	route := app.Group("/applicants")
	route.Get("/", handler.Index)
	route.Get("/new", handler.New)
	route.Post("/", handler.Create)
	route.Get("/:id", handler.Show)
	route.Get("/:id/edit", handler.Edit)
	route.Patch("/:id", handler.Update)
	route.Put("/:id", handler.Update)
	route.Delete("/:id", handler.Destroy)

	newApplicantAPIHandler(app, useCase)
}

func (ah *applicantHandler) Index(c *fiber.Ctx) error {
	applicants, err := ah.uc.GetAllApplicants(c.Context())
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "Index")
		return err
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "Index")
	return c.Render("applicants/index", fiber.Map{
		"Title":      "Applicants",
		"Notice":     popFlash(c),
		"Applicants": *applicants,
	}, views.Layout)
}

func (ah *applicantHandler) Show(c *fiber.Ctx) error {
	applicant, err := ah.findApplicant(c, "Show")
	if err != nil {
		return err
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "Show")
	return c.Render("applicants/show", fiber.Map{
		"Title":     "Applicant",
		"Notice":    popFlash(c),
		"Applicant": applicant,
	}, views.Layout)
}

func (ah *applicantHandler) New(c *fiber.Ctx) error {
	config.PrintLogInfo(requestID(c), fiber.StatusOK, "New")
	return ah.renderForm(c, fiber.StatusOK, newFormView(0, "", form.EditorForApplicant(nil)))
}

func (ah *applicantHandler) Edit(c *fiber.Ctx) error {
	applicant, err := ah.findApplicant(c, "Edit")
	if err != nil {
		return err
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "Edit")
	return ah.renderForm(c, fiber.StatusOK, newFormView(applicant.ID, applicant.Name, form.EditorForApplicant(applicant)))
}

func (ah *applicantHandler) Create(c *fiber.Ctx) error {
	sub, err := parseSubmission(c)
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "Create")
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	// add/remove block buttons only change the form, nothing is saved
	if sub.Apply() {
		config.PrintLogInfo(requestID(c), fiber.StatusOK, "Create")
		return ah.renderForm(c, fiber.StatusOK, newFormView(0, sub.Name, sub.Editor))
	}

	result, err := ah.uc.CreateApplicant(c.Context(), sub.Attributes())
	if err != nil {
		return ah.saveFailed(c, "Create", 0, result, err)
	}

	config.PrintLogInfo(requestID(c), fiber.StatusSeeOther, "Create")
	setFlash(c, result.Message)
	return c.Redirect(fmt.Sprintf("/applicants/%d", result.Applicant.ID), fiber.StatusSeeOther)
}

func (ah *applicantHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusNotFound, "Update")
		return fiber.NewError(fiber.StatusNotFound, "Applicant not found")
	}

	sub, err := parseSubmission(c)
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "Update")
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	if sub.Apply() {
		config.PrintLogInfo(requestID(c), fiber.StatusOK, "Update")
		return ah.renderForm(c, fiber.StatusOK, newFormView(id, sub.Name, sub.Editor))
	}

	result, err := ah.uc.UpdateApplicant(c.Context(), id, sub.Attributes())
	if err != nil {
		return ah.saveFailed(c, "Update", id, result, err)
	}

	config.PrintLogInfo(requestID(c), fiber.StatusSeeOther, "Update")
	setFlash(c, result.Message)
	return c.Redirect(fmt.Sprintf("/applicants/%d", id), fiber.StatusSeeOther)
}

func (ah *applicantHandler) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusNotFound, "Destroy")
		return fiber.NewError(fiber.StatusNotFound, "Applicant not found")
	}

	if err := ah.uc.DeleteApplicant(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			config.PrintLogInfo(requestID(c), fiber.StatusNotFound, "Destroy")
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "Destroy")
		return err
	}

	config.PrintLogInfo(requestID(c), fiber.StatusSeeOther, "Destroy")
	setFlash(c, "Applicant was successfully destroyed")
	return c.Redirect("/applicants", fiber.StatusSeeOther)
}

func (ah *applicantHandler) findApplicant(c *fiber.Ctx, functionName string) (*domain.Applicant, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusNotFound, functionName)
		return nil, fiber.NewError(fiber.StatusNotFound, "Applicant not found")
	}

	applicant, err := ah.uc.GetApplicantByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			config.PrintLogInfo(requestID(c), fiber.StatusNotFound, functionName)
			return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, functionName)
		return nil, err
	}
	return applicant, nil
}

// saveFailed re-renders the submitted form for validation errors; everything else
// is a navigation or server failure.
func (ah *applicantHandler) saveFailed(c *fiber.Ctx, functionName string, id int, result *domain.SaveResult, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		config.PrintLogInfo(requestID(c), fiber.StatusUnprocessableEntity, functionName)
		editor := form.NewReferenceEditor(result.Attributes.PersonalReferencesAttributes)
		view := newFormView(id, result.Attributes.Name, editor).withErrors(verr)
		return ah.renderForm(c, fiber.StatusUnprocessableEntity, view)
	}

	if errors.Is(err, domain.ErrNotFound) {
		config.PrintLogInfo(requestID(c), fiber.StatusNotFound, functionName)
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, functionName)
	return err
}

func (ah *applicantHandler) renderForm(c *fiber.Ctx, status int, view formView) error {
	page, title := "applicants/new", "New applicant"
	if view.ApplicantID != 0 {
		page, title = "applicants/edit", "Editing applicant"
	}

	return c.Status(status).Render(page, fiber.Map{
		"Title": title,
		"Form":  view,
	}, views.Layout)
}

func parseSubmission(c *fiber.Ctx) (*form.Submission, error) {
	values := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return form.ParseSubmission(values)
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("requestid").(string); ok {
		return v
	}
	return ""
}
