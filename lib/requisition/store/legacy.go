package requisitionstore

import (
	"github.com/pkg/errors"
	"job-requisition-backend/models"
)

// legacyRequisition запись в формате браузерного localStorage (массив без обертки)
type legacyRequisition struct {
	ID                string  `json:"id"`
	PositionTitle     string  `json:"positionTitle"`
	DepartmentName    string  `json:"departmentName"`
	StartDate         string  `json:"startDate"`
	Skills            string  `json:"skills"`
	Explanation       string  `json:"explanation"`
	Duration          string  `json:"duration"`
	EndDate           *string `json:"endDate"`
	EmploymentStatus  string  `json:"status_employment"`
	RequestedBy       string  `json:"requestedBy"`
	RequestSignature  string  `json:"requestSignature"`
	SubmittedDate     string  `json:"submittedDate"`
	Status            string  `json:"status"`
	SalaryRange       string  `json:"salaryRange"`
	Budget            string  `json:"budget"`
	ApprovedBy        string  `json:"approvedBy"`
	ApprovalSignature string  `json:"approvalSignature"`
	VerifiedBy        string  `json:"verifiedBy"`
	ApprovedDate      *string `json:"approvedDate"`
	Remarks           *string `json:"remarks"`
}

// convert перевод в текущую модель, запись с нарушенными инвариантами считается поврежденной
func (l legacyRequisition) convert() (models.JobRequisition, error) {
	rec := models.JobRequisition{
		ID:                l.ID,
		PositionTitle:     l.PositionTitle,
		DepartmentName:    l.DepartmentName,
		StartDate:         l.StartDate,
		Skills:            l.Skills,
		Explanation:       l.Explanation,
		Duration:          models.Duration(l.Duration).OrDefault(),
		EmploymentStatus:  models.EmploymentStatus(l.EmploymentStatus).OrDefault(),
		RequestedBy:       l.RequestedBy,
		RequestSignature:  l.RequestSignature,
		SubmittedDate:     l.SubmittedDate,
		Status:            models.RequisitionStatus(l.Status),
		SalaryRange:       l.SalaryRange,
		Budget:            models.Budget(l.Budget),
		ApprovedBy:        l.ApprovedBy,
		ApprovalSignature: l.ApprovalSignature,
		VerifiedBy:        l.VerifiedBy,
		ApprovedDate:      models.StrPtr(deref(l.ApprovedDate)),
		Remarks:           models.StrPtr(deref(l.Remarks)),
	}
	if rec.Duration != models.DurationPermanent {
		rec.EndDate = models.StrPtr(deref(l.EndDate))
	}
	if err := rec.Duration.Validate(); err != nil {
		return rec, errors.Wrapf(err, "заявка %s", l.ID)
	}
	if rec.Duration == models.DurationTemporary && rec.EndDate == nil {
		return rec, errors.Errorf("заявка %s: не указана дата окончания временной позиции", l.ID)
	}
	if err := rec.Status.Validate(); err != nil {
		return rec, errors.Wrapf(err, "заявка %s", l.ID)
	}
	if (rec.Status == models.RequisitionStatusPending) != (rec.ApprovedDate == nil) {
		return rec, errors.Errorf("заявка %s: дата решения не соответствует статусу %s", l.ID, rec.Status)
	}
	return rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
