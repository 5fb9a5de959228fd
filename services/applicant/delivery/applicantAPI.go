package delivery

import (
	"applicants/config"
	"applicants/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type applicantAPIHandler struct {
	uc domain.ApplicantUseCase
}

func newApplicantAPIHandler(app *fiber.App, useCase domain.ApplicantUseCase) {
	handler := &applicantAPIHandler{
		uc: useCase,
	}

	route := app.Group("/api/applicants")
	route.Get("/", handler.GetAllApplicants)
	route.Post("/", handler.CreateApplicant)
	route.Post("/import", handler.UploadAndImport)
	route.Get("/import/template", handler.DownloadTemplate)
	route.Get("/:id", handler.GetApplicantByID)
	route.Patch("/:id", handler.UpdateApplicant)
	route.Put("/:id", handler.UpdateApplicant)
	route.Delete("/:id", handler.DeleteApplicant)
}

func (aah *applicantAPIHandler) GetAllApplicants(c *fiber.Ctx) error {
	applicants, err := aah.uc.GetAllApplicants(c.Context())
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "GetAllApplicants")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve applicants",
			"error":   err.Error(),
			"data":    nil,
		})
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "GetAllApplicants")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applicants retrieved successfully",
		"data":    applicants,
	})
}

func (aah *applicantAPIHandler) GetApplicantByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "GetApplicantByID")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Converter failure on id",
			"error":   err.Error(),
		})
	}

	applicant, err := aah.uc.GetApplicantByID(c.Context(), id)
	if err != nil {
		status := errorStatus(err)
		config.PrintLogInfo(requestID(c), status, "GetApplicantByID")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve applicant",
			"error":   err.Error(),
			"data":    nil,
		})
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "GetApplicantByID")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applicant retrieved successfully",
		"data":    applicant,
	})
}

func (aah *applicantAPIHandler) CreateApplicant(c *fiber.Ctx) error {
	var payload domain.ApplicantAttributes
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "CreateApplicant")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := aah.uc.CreateApplicant(c.Context(), payload)
	if err != nil {
		return aah.saveFailed(c, "CreateApplicant", result, err)
	}

	config.PrintLogInfo(requestID(c), fiber.StatusCreated, "CreateApplicant")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": result.Message,
		"data":    result.Applicant,
	})
}

func (aah *applicantAPIHandler) UpdateApplicant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "UpdateApplicant")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Converter failure on id",
			"error":   err.Error(),
		})
	}

	var payload domain.ApplicantAttributes
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "UpdateApplicant")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := aah.uc.UpdateApplicant(c.Context(), id, payload)
	if err != nil {
		return aah.saveFailed(c, "UpdateApplicant", result, err)
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "UpdateApplicant")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": result.Message,
		"data":    result.Applicant,
	})
}

func (aah *applicantAPIHandler) DeleteApplicant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "DeleteApplicant")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Converter failure on id",
			"error":   err.Error(),
		})
	}

	if err := aah.uc.DeleteApplicant(c.Context(), id); err != nil {
		status := errorStatus(err)
		config.PrintLogInfo(requestID(c), status, "DeleteApplicant")
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete applicant",
			"error":   err.Error(),
		})
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "DeleteApplicant")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applicant was successfully destroyed",
	})
}

func (aah *applicantAPIHandler) saveFailed(c *fiber.Ctx, functionName string, result *domain.SaveResult, err error) error {
	status := errorStatus(err)
	config.PrintLogInfo(requestID(c), status, functionName)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": verr.Error(),
			"error":   verr.Errors,
			"data":    result,
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": "Failed to save applicant",
		"error":   err.Error(),
		"data":    nil,
	})
}

func errorStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
