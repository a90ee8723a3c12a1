package requisitionvalidation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"job-requisition-backend/models"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

func validDraft() requisitionapimodels.RequisitionData {
	return requisitionapimodels.RequisitionData{
		PositionTitle:    "Engineer",
		DepartmentName:   "Eng",
		RequestedBy:      "Alice",
		RequestSignature: "sig1",
		Duration:         models.DurationPermanent,
	}
}

func validReview() requisitionapimodels.ReviewData {
	return requisitionapimodels.ReviewData{
		SalaryRange:       "$80k-$100k",
		Budget:            models.BudgetSufficient,
		Remarks:           "not in budget",
		ApprovedBy:        "Bob",
		ApprovalSignature: "sig2",
		VerifiedBy:        "HR",
	}
}

func requireCode(t *testing.T, err error, code Code) *Error {
	t.Helper()
	vErr, ok := IsValidationError(err)
	require.True(t, ok, "ожидалась ошибка валидации, получено %v", err)
	require.Equal(t, code, vErr.Code)
	return vErr
}

func TestValidateCreate(t *testing.T) {
	t.Run(`valid permanent`, func(t *testing.T) {
		require.NoError(t, ValidateCreate(validDraft()))
	})

	t.Run(`valid temporary`, func(t *testing.T) {
		draft := validDraft()
		draft.Duration = models.DurationTemporary
		draft.EndDate = "2026-12-31"
		require.NoError(t, ValidateCreate(draft))
	})

	t.Run(`missing required fields`, func(t *testing.T) {
		cases := map[string]func(d *requisitionapimodels.RequisitionData){
			"position_title":    func(d *requisitionapimodels.RequisitionData) { d.PositionTitle = "" },
			"department_name":   func(d *requisitionapimodels.RequisitionData) { d.DepartmentName = "" },
			"requested_by":      func(d *requisitionapimodels.RequisitionData) { d.RequestedBy = "" },
			"request_signature": func(d *requisitionapimodels.RequisitionData) { d.RequestSignature = "" },
		}
		for field, mutate := range cases {
			draft := validDraft()
			mutate(&draft)
			vErr := requireCode(t, ValidateCreate(draft), CodeMissingField)
			require.Equal(t, []string{field}, vErr.Fields)
		}
	})

	t.Run(`reports every missing field`, func(t *testing.T) {
		vErr := requireCode(t, ValidateCreate(requisitionapimodels.RequisitionData{}), CodeMissingField)
		require.Equal(t, []string{"position_title", "department_name", "requested_by", "request_signature"}, vErr.Fields)
	})

	t.Run(`temporary without end date`, func(t *testing.T) {
		draft := validDraft()
		draft.Duration = models.DurationTemporary
		requireCode(t, ValidateCreate(draft), CodeInvalidDuration)
	})

	t.Run(`permanent with end date`, func(t *testing.T) {
		draft := validDraft()
		draft.EndDate = "2026-12-31"
		requireCode(t, ValidateCreate(draft), CodeInvalidDuration)
	})

	t.Run(`unknown enums`, func(t *testing.T) {
		draft := validDraft()
		draft.Duration = "forever"
		requireCode(t, ValidateCreate(draft), CodeInvalidValue)

		draft = validDraft()
		draft.EmploymentStatus = "freelance"
		requireCode(t, ValidateCreate(draft), CodeInvalidValue)
	})
}

func TestValidateApprove(t *testing.T) {
	current := models.JobRequisition{ID: "REQ-001", Status: models.RequisitionStatusPending}

	t.Run(`valid`, func(t *testing.T) {
		require.NoError(t, ValidateApprove(current, validReview()))
	})

	t.Run(`remarks are optional`, func(t *testing.T) {
		review := validReview()
		review.Remarks = ""
		require.NoError(t, ValidateApprove(current, review))
	})

	t.Run(`empty approval signature`, func(t *testing.T) {
		review := validReview()
		review.ApprovalSignature = ""
		vErr := requireCode(t, ValidateApprove(current, review), CodeMissingField)
		require.Equal(t, []string{"approval_signature"}, vErr.Fields)
	})

	t.Run(`budget required`, func(t *testing.T) {
		review := validReview()
		review.Budget = models.BudgetUnset
		vErr := requireCode(t, ValidateApprove(current, review), CodeMissingField)
		require.Equal(t, []string{"budget"}, vErr.Fields)
	})

	t.Run(`unknown budget`, func(t *testing.T) {
		review := validReview()
		review.Budget = "huge"
		requireCode(t, ValidateApprove(current, review), CodeInvalidValue)
	})
}

func TestValidateReject(t *testing.T) {
	current := models.JobRequisition{ID: "REQ-001", Status: models.RequisitionStatusPending}

	t.Run(`valid without salary`, func(t *testing.T) {
		review := validReview()
		review.SalaryRange = ""
		review.Budget = models.BudgetUnset
		require.NoError(t, ValidateReject(current, review))
	})

	t.Run(`remarks required`, func(t *testing.T) {
		review := validReview()
		review.Remarks = "   "
		vErr := requireCode(t, ValidateReject(current, review), CodeMissingField)
		require.Equal(t, []string{"remarks"}, vErr.Fields)
	})
}

func TestValidateTransition(t *testing.T) {
	require.NoError(t, ValidateTransition(models.RequisitionStatusPending, models.RequisitionStatusApproved))
	require.NoError(t, ValidateTransition(models.RequisitionStatusPending, models.RequisitionStatusRejected))

	err := ValidateTransition(models.RequisitionStatusApproved, models.RequisitionStatusRejected)
	require.True(t, errors.Is(err, ErrIllegalTransition))

	err = ValidateTransition(models.RequisitionStatusRejected, models.RequisitionStatusApproved)
	require.True(t, errors.Is(err, ErrIllegalTransition))

	err = ValidateTransition(models.RequisitionStatusPending, models.RequisitionStatusPending)
	require.True(t, errors.Is(err, ErrIllegalTransition))
}
