package models

type JobRequisition struct {
	ID               string            `json:"id"`
	PositionTitle    string            `json:"position_title"`
	DepartmentName   string            `json:"department_name"`
	StartDate        string            `json:"start_date"`
	Skills           string            `json:"skills"`
	Explanation      string            `json:"explanation"`
	Duration         Duration          `json:"duration"`
	EndDate          *string           `json:"end_date"`
	EmploymentStatus EmploymentStatus  `json:"employment_status"`
	RequestedBy      string            `json:"requested_by"`
	RequestSignature string            `json:"request_signature"`
	SubmittedDate    string            `json:"submitted_date"`
	Status           RequisitionStatus `json:"status"`

	// заполняется HR при рассмотрении
	SalaryRange       string  `json:"salary_range"`
	Budget            Budget  `json:"budget"`
	ApprovedBy        string  `json:"approved_by"`
	ApprovalSignature string  `json:"approval_signature"`
	VerifiedBy        string  `json:"verified_by"`
	ApprovedDate      *string `json:"approved_date"`
	Remarks           *string `json:"remarks"`
}

// Clone копия заявки без общих указателей
func (r JobRequisition) Clone() JobRequisition {
	result := r
	result.EndDate = cloneStr(r.EndDate)
	result.ApprovedDate = cloneStr(r.ApprovedDate)
	result.Remarks = cloneStr(r.Remarks)
	return result
}

func (r JobRequisition) GetEndDate() string {
	if r.EndDate == nil {
		return ""
	}
	return *r.EndDate
}

func (r JobRequisition) GetApprovedDate() string {
	if r.ApprovedDate == nil {
		return ""
	}
	return *r.ApprovedDate
}

func (r JobRequisition) GetRemarks() string {
	if r.Remarks == nil {
		return ""
	}
	return *r.Remarks
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StrPtr nil для пустой строки
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
