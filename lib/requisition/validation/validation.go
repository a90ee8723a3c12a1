package requisitionvalidation

import (
	"strings"

	"github.com/pkg/errors"
	"job-requisition-backend/models"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

type requiredField struct {
	name  string
	value string
}

func missing(fields ...requiredField) []string {
	var result []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			result = append(result, f.name)
		}
	}
	return result
}

func ValidateCreate(draft requisitionapimodels.RequisitionData) error {
	empty := missing(
		requiredField{"position_title", draft.PositionTitle},
		requiredField{"department_name", draft.DepartmentName},
		requiredField{"requested_by", draft.RequestedBy},
		requiredField{"request_signature", draft.RequestSignature},
	)
	if len(empty) > 0 {
		return &Error{
			Code:   CodeMissingField,
			Fields: empty,
			Reason: "заполните обязательные поля и подпишите заявку",
		}
	}
	duration := draft.Duration.OrDefault()
	if err := duration.Validate(); err != nil {
		return &Error{Code: CodeInvalidValue, Fields: []string{"duration"}, Reason: err.Error()}
	}
	if err := draft.EmploymentStatus.OrDefault().Validate(); err != nil {
		return &Error{Code: CodeInvalidValue, Fields: []string{"employment_status"}, Reason: err.Error()}
	}
	endDate := strings.TrimSpace(draft.EndDate)
	switch {
	case duration == models.DurationTemporary && endDate == "":
		return &Error{
			Code:   CodeInvalidDuration,
			Fields: []string{"end_date"},
			Reason: "для временной позиции необходимо указать дату окончания",
		}
	case duration == models.DurationPermanent && endDate != "":
		return &Error{
			Code:   CodeInvalidDuration,
			Fields: []string{"end_date"},
			Reason: "для постоянной позиции дата окончания не указывается",
		}
	}
	return nil
}

func ValidateApprove(current models.JobRequisition, review requisitionapimodels.ReviewData) error {
	empty := missing(
		requiredField{"salary_range", review.SalaryRange},
		requiredField{"approved_by", review.ApprovedBy},
		requiredField{"verified_by", review.VerifiedBy},
		requiredField{"approval_signature", review.ApprovalSignature},
	)
	if !review.Budget.IsSet() {
		empty = append(empty, "budget")
	}
	if len(empty) > 0 {
		return &Error{
			Code:   CodeMissingField,
			Fields: empty,
			Reason: "заполните обязательные поля и подпишите заявку",
		}
	}
	if err := review.Budget.Validate(); err != nil {
		return &Error{Code: CodeInvalidValue, Fields: []string{"budget"}, Reason: err.Error()}
	}
	return nil
}

func ValidateReject(current models.JobRequisition, review requisitionapimodels.ReviewData) error {
	empty := missing(
		requiredField{"remarks", review.Remarks},
		requiredField{"approved_by", review.ApprovedBy},
		requiredField{"verified_by", review.VerifiedBy},
		requiredField{"approval_signature", review.ApprovalSignature},
	)
	if len(empty) > 0 {
		return &Error{
			Code:   CodeMissingField,
			Fields: empty,
			Reason: "укажите причину отклонения, заполните обязательные поля и подпишите заявку",
		}
	}
	return nil
}

// ValidateTransition рассмотреть можно только заявку на рассмотрении
func ValidateTransition(from, to models.RequisitionStatus) error {
	if from != models.RequisitionStatusPending {
		return errors.Wrapf(ErrIllegalTransition, "заявка уже в статусе %v", from)
	}
	if !to.IsTerminal() {
		return errors.Wrapf(ErrIllegalTransition, "переход в статус %q", string(to))
	}
	return nil
}
