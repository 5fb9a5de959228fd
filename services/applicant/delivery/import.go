package delivery

import (
	"applicants/config"
	"applicants/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var importHeader = []string{"applicant_name", "reference_name", "reference_email"}

func (aah *applicantAPIHandler) UploadAndImport(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "UploadAndImport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to parse file",
		})
	}

	f, err := file.Open()
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "UploadAndImport")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to open file",
		})
	}
	defer f.Close()

	payload, badRequests := readImportCSV(f)
	if len(badRequests) > 0 {
		config.PrintLogInfo(requestID(c), fiber.StatusBadRequest, "UploadAndImport")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Import Failure, bad input found.",
			"error":   badRequests,
		})
	}

	summary, err := aah.uc.ImportApplicants(c.Context(), &payload)
	if err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "UploadAndImport")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Import Failure",
			"error":   err.Error(),
			"data":    summary,
		})
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "UploadAndImport")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "File processed successfully",
		"data":    summary,
	})
}

func (aah *applicantAPIHandler) DownloadTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="applicants_template.csv"`)
	c.Set(fiber.HeaderContentType, "text/csv")

	w := csv.NewWriter(c)
	if err := w.Write(importHeader); err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "DownloadTemplate")
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		config.PrintLogInfo(requestID(c), fiber.StatusInternalServerError, "DownloadTemplate")
		return err
	}

	config.PrintLogInfo(requestID(c), fiber.StatusOK, "DownloadTemplate")
	return nil
}

// readImportCSV groups rows by applicant name in order of first appearance. A row with
// only an applicant name yields an applicant without references.
func readImportCSV(r io.Reader) ([]domain.ApplicantAttributes, []string) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, []string{"row 1: missing header"}
		}
		return nil, []string{fmt.Sprintf("row 1: %v", err)}
	}
	if !sameHeader(header) {
		return nil, []string{fmt.Sprintf("row 1: expected header %s", strings.Join(importHeader, ","))}
	}

	var (
		errList []string
		payload []domain.ApplicantAttributes
		byName  = map[string]int{}
	)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errList = append(errList, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if len(row) != len(importHeader) {
			errList = append(errList, fmt.Sprintf("row %d: expected %d columns, got %d", line, len(importHeader), len(row)))
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			errList = append(errList, fmt.Sprintf("row %d: applicant_name is required", line))
			continue
		}

		idx, ok := byName[name]
		if !ok {
			idx = len(payload)
			byName[name] = idx
			payload = append(payload, domain.ApplicantAttributes{Name: name})
		}

		refName, refEmail := strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
		if refName == "" && refEmail == "" {
			continue
		}
		payload[idx].PersonalReferencesAttributes = append(payload[idx].PersonalReferencesAttributes,
			domain.PersonalReferenceAttributes{Name: refName, EmailAddress: refEmail})
	}

	if len(payload) == 0 && len(errList) == 0 {
		errList = append(errList, "file contains no applicants")
	}
	return payload, errList
}

func sameHeader(header []string) bool {
	if len(header) != len(importHeader) {
		return false
	}
	for i, h := range header {
		// tolerate a UTF-8 BOM from spreadsheet exports
		if strings.TrimPrefix(strings.TrimSpace(strings.ToLower(h)), "\ufeff") != importHeader[i] {
			return false
		}
	}
	return true
}
