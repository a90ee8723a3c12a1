package requisitionapimodels

import (
	"job-requisition-backend/models"
)

// RequisitionData черновик заявки от руководителя подразделения
type RequisitionData struct {
	PositionTitle    string                  `json:"position_title"`    // должность
	DepartmentName   string                  `json:"department_name"`   // подразделение
	StartDate        string                  `json:"start_date"`        // желаемая дата выхода (YYYY-MM-DD)
	Skills           string                  `json:"skills"`            // требуемые навыки
	Explanation      string                  `json:"explanation"`       // обоснование
	Duration         models.Duration         `json:"duration"`          // permanent/temporary
	EndDate          string                  `json:"end_date"`          // дата окончания, только для temporary
	EmploymentStatus models.EmploymentStatus `json:"employment_status"` // full-time/part-time/contract
	RequestedBy      string                  `json:"requested_by"`      // инициатор
	RequestSignature string                  `json:"request_signature"` // подпись инициатора
}

// ReviewData данные рассмотрения заявки HR
type ReviewData struct {
	SalaryRange       string        `json:"salary_range"`       // вилка зп, только при согласовании
	Budget            models.Budget `json:"budget"`             // sufficient/additional, только при согласовании
	Remarks           string        `json:"remarks"`            // комментарий, обязателен при отклонении
	ApprovedBy        string        `json:"approved_by"`        // кто согласовал
	ApprovalSignature string        `json:"approval_signature"` // подпись согласующего
	VerifiedBy        string        `json:"verified_by"`        // кто проверил
}

// RejectData данные отклонения заявки, вилка и бюджет не передаются
type RejectData struct {
	Remarks           string `json:"remarks"`
	ApprovedBy        string `json:"approved_by"`
	ApprovalSignature string `json:"approval_signature"`
	VerifiedBy        string `json:"verified_by"`
}

func (r RejectData) ToReview() ReviewData {
	return ReviewData{
		Remarks:           r.Remarks,
		ApprovedBy:        r.ApprovedBy,
		ApprovalSignature: r.ApprovalSignature,
		VerifiedBy:        r.VerifiedBy,
	}
}

type RequisitionFilter struct {
	Status models.RequisitionStatus `json:"status"` // пусто - все заявки
}

func (f RequisitionFilter) Validate() error {
	if f.Status == "" {
		return nil
	}
	return f.Status.Validate()
}

func (f RequisitionFilter) Match(rec models.JobRequisition) bool {
	return f.Status == "" || rec.Status == f.Status
}

type RequisitionStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

func CalcStats(list []models.JobRequisition) RequisitionStats {
	result := RequisitionStats{Total: len(list)}
	for _, rec := range list {
		switch rec.Status {
		case models.RequisitionStatusPending:
			result.Pending++
		case models.RequisitionStatusApproved:
			result.Approved++
		case models.RequisitionStatusRejected:
			result.Rejected++
		}
	}
	return result
}
