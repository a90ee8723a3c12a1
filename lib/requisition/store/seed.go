package requisitionstore

import (
	"job-requisition-backend/models"
)

// SampleRequisitions примеры для пустого хранилища: согласованная, отклоненная и на рассмотрении
func SampleRequisitions() []models.JobRequisition {
	return []models.JobRequisition{
		{
			ID:               "REQ-001",
			PositionTitle:    "Senior Software Engineer",
			DepartmentName:   "Engineering",
			StartDate:        "2023-04-15",
			Skills:           "React, Node.js, TypeScript, 5+ years experience",
			Explanation:      "Need to expand the development team for new product launch",
			Duration:         models.DurationPermanent,
			EmploymentStatus: models.EmploymentFullTime,
			RequestedBy:      "John Smith",
			SubmittedDate:    "2023-03-15",
			Status:           models.RequisitionStatusApproved,
			SalaryRange:      "$90,000 - $120,000",
			Budget:           models.BudgetSufficient,
			ApprovedBy:       "Jane Wilson",
			VerifiedBy:       "HR Department",
			ApprovedDate:     models.StrPtr("2023-03-18"),
			Remarks:          models.StrPtr("Approved with budget allocation for Q2"),
		},
		{
			ID:               "REQ-002",
			PositionTitle:    "Marketing Specialist",
			DepartmentName:   "Marketing",
			StartDate:        "2023-05-01",
			Skills:           "Digital marketing, SEO, content creation",
			Explanation:      "Need additional support for upcoming product campaign",
			Duration:         models.DurationTemporary,
			EndDate:          models.StrPtr("2023-09-30"),
			EmploymentStatus: models.EmploymentFullTime,
			RequestedBy:      "Sarah Johnson",
			SubmittedDate:    "2023-03-20",
			Status:           models.RequisitionStatusRejected,
			SalaryRange:      "$60,000 - $75,000",
			Budget:           models.BudgetAdditional,
			ApprovedBy:       "Jane Wilson",
			VerifiedBy:       "HR Department",
			ApprovedDate:     models.StrPtr("2023-03-22"),
			Remarks:          models.StrPtr("Position on hold due to budget constraints"),
		},
		{
			ID:               "REQ-003",
			PositionTitle:    "HR Assistant",
			DepartmentName:   "Human Resources",
			StartDate:        "2023-04-10",
			Skills:           "HR administration, onboarding experience, HRIS knowledge",
			Explanation:      "Current HR team is understaffed for upcoming hiring initiatives",
			Duration:         models.DurationPermanent,
			EmploymentStatus: models.EmploymentPartTime,
			RequestedBy:      "Michael Brown",
			SubmittedDate:    "2023-03-25",
			Status:           models.RequisitionStatusPending,
		},
	}
}
