package pdfexport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"job-requisition-backend/models"
)

const (
	fontFamily = "Helvetica"
	labelWidth = 55
	lineHeight = 7
	signHeight = 20
)

// GenerateRequisitionForm печатная форма заявки с подписями инициатора и согласующего
func GenerateRequisitionForm(rec models.JobRequisition) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRequisitionForm panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Job Requisition "+rec.ID), false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr("Job Requisition Form"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s  |  submitted %s  |  %s", rec.ID, rec.SubmittedDate, strings.ToUpper(string(rec.Status)))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Position")
	field(pdf, tr, "Position title", rec.PositionTitle)
	field(pdf, tr, "Department", rec.DepartmentName)
	field(pdf, tr, "Start date", rec.StartDate)
	field(pdf, tr, "Duration", string(rec.Duration))
	if rec.Duration == models.DurationTemporary {
		field(pdf, tr, "End date", rec.GetEndDate())
	}
	field(pdf, tr, "Employment status", string(rec.EmploymentStatus))
	field(pdf, tr, "Skills", rec.Skills)
	field(pdf, tr, "Explanation", rec.Explanation)

	section(pdf, tr, "Request")
	field(pdf, tr, "Requested by", rec.RequestedBy)
	if err = signature(pdf, tr, "request-signature", rec.RequestSignature); err != nil {
		return nil, err
	}

	if rec.Status.IsTerminal() {
		section(pdf, tr, "Review")
		if rec.Status == models.RequisitionStatusApproved {
			field(pdf, tr, "Salary range", rec.SalaryRange)
			field(pdf, tr, "Budget", string(rec.Budget))
		}
		field(pdf, tr, "Approved by", rec.ApprovedBy)
		field(pdf, tr, "Verified by", rec.VerifiedBy)
		field(pdf, tr, "Decision date", rec.GetApprovedDate())
		field(pdf, tr, "Remarks", rec.GetRemarks())
		if err = signature(pdf, tr, "approval-signature", rec.ApprovalSignature); err != nil {
			return nil, err
		}
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(3)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(labelWidth, lineHeight, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

// signature подпись из формы приходит как data URI изображения, иначе выводится как текст
func signature(pdf *fpdf.Fpdf, tr func(string) string, name, value string) error {
	imgType, body, ok := parseDataURI(value)
	if !ok {
		field(pdf, tr, "Signature", value)
		return nil
	}
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(body))
	if pdf.Error() != nil {
		return errors.Wrap(pdf.Error(), "ошибка чтения изображения подписи")
	}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(labelWidth, lineHeight, tr("Signature"), "", 0, "L", false, 0, "")
	x, y := pdf.GetXY()
	pdf.ImageOptions(name, x, y, 0, signHeight, false, fpdf.ImageOptions{ImageType: imgType}, 0, "")
	pdf.SetY(y + signHeight + 2)
	return nil
}

func parseDataURI(value string) (imgType string, body []byte, ok bool) {
	const prefix = "data:image/"
	if !strings.HasPrefix(value, prefix) {
		return "", nil, false
	}
	meta, data, found := strings.Cut(value[len(prefix):], ",")
	if !found {
		return "", nil, false
	}
	imgType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, false
	}
	switch imgType {
	case "png", "jpg", "gif":
	case "jpeg":
		imgType = "jpg"
	default:
		return "", nil, false
	}
	body, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(body) == 0 {
		return "", nil, false
	}
	return imgType, body, true
}
