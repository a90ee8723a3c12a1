package models

import "github.com/pkg/errors"

type RequisitionStatus string

const (
	RequisitionStatusPending  RequisitionStatus = "pending"
	RequisitionStatusApproved RequisitionStatus = "approved"
	RequisitionStatusRejected RequisitionStatus = "rejected"
)

func (s RequisitionStatus) Validate() error {
	switch s {
	case RequisitionStatusPending, RequisitionStatusApproved, RequisitionStatusRejected:
		return nil
	}
	return errors.Errorf("неизвестный статус заявки: %q", string(s))
}

// IsTerminal - заявка уже рассмотрена и больше не меняется
func (s RequisitionStatus) IsTerminal() bool {
	return s == RequisitionStatusApproved || s == RequisitionStatusRejected
}

var RequisitionStatuses = []RequisitionStatus{
	RequisitionStatusPending,
	RequisitionStatusApproved,
	RequisitionStatusRejected,
}

type Duration string

const (
	DurationPermanent Duration = "permanent"
	DurationTemporary Duration = "temporary"
)

func (d Duration) Validate() error {
	switch d {
	case DurationPermanent, DurationTemporary:
		return nil
	}
	return errors.Errorf("неизвестный срок занятости: %q", string(d))
}

// OrDefault в форме по умолчанию выбрана постоянная позиция
func (d Duration) OrDefault() Duration {
	if d == "" {
		return DurationPermanent
	}
	return d
}

type EmploymentStatus string

const (
	EmploymentFullTime EmploymentStatus = "full-time"
	EmploymentPartTime EmploymentStatus = "part-time"
	EmploymentContract EmploymentStatus = "contract"
)

func (e EmploymentStatus) Validate() error {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return nil
	}
	return errors.Errorf("неизвестный тип занятости: %q", string(e))
}

func (e EmploymentStatus) OrDefault() EmploymentStatus {
	if e == "" {
		return EmploymentFullTime
	}
	return e
}

type Budget string

const (
	BudgetUnset      Budget = ""
	BudgetSufficient Budget = "sufficient"
	BudgetAdditional Budget = "additional"
)

// Validate пустое значение допустимо, бюджет заполняется при согласовании
func (b Budget) Validate() error {
	switch b {
	case BudgetUnset, BudgetSufficient, BudgetAdditional:
		return nil
	}
	return errors.Errorf("неизвестное значение бюджета: %q", string(b))
}

func (b Budget) IsSet() bool {
	return b != BudgetUnset
}

// Outcome - решение проверяющего по заявке
type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

// TargetStatus статус, в который переходит заявка при данном решении
func (o Outcome) TargetStatus() (RequisitionStatus, error) {
	switch o {
	case OutcomeApprove:
		return RequisitionStatusApproved, nil
	case OutcomeReject:
		return RequisitionStatusRejected, nil
	}
	return "", errors.Errorf("неизвестное решение по заявке: %q", string(o))
}

// DateLayout формат дат заявки (YYYY-MM-DD)
const DateLayout = "2006-01-02"
