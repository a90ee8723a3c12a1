package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"job-requisition-backend/models"
)

type Provider interface {
	ExportRequisitionList(list []models.JobRequisition) (*bytes.Buffer, error)
}

func NewHandler() Provider {
	return impl{}
}

type impl struct{}

const sheetName = "Заявки"

var requisitionHeaders = []string{
	"Номер", "Должность", "Подразделение", "Дата выхода", "Срок", "Дата окончания", "Занятость",
	"Инициатор", "Дата подачи", "Статус", "Зарплатная вилка", "Бюджет", "Согласовал", "Проверил",
	"Дата решения", "Комментарий",
}

var statusTitles = map[models.RequisitionStatus]string{
	models.RequisitionStatusPending:  "На рассмотрении",
	models.RequisitionStatusApproved: "Согласована",
	models.RequisitionStatusRejected: "Отклонена",
}

var budgetTitles = map[models.Budget]string{
	models.BudgetSufficient: "В рамках бюджета",
	models.BudgetAdditional: "Требуется доп. бюджет",
}

func (i impl) ExportRequisitionList(list []models.JobRequisition) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	row, err := writeHeader(f, sheetName, 0, requisitionHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = writeRequisitionData(f, sheetName, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeRequisitionData(f *excelize.File, sheet string, list []models.JobRequisition, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requisitionHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.ID,
			item.PositionTitle,
			item.DepartmentName,
			item.StartDate,
			durationTitle(item.Duration),
			item.GetEndDate(),
			string(item.EmploymentStatus),
			item.RequestedBy,
			item.SubmittedDate,
			statusTitles[item.Status],
			item.SalaryRange,
			budgetTitles[item.Budget],
			item.ApprovedBy,
			item.VerifiedBy,
			item.GetApprovedDate(),
			item.GetRemarks(),
		}
		for idx, value := range values {
			if value == "" {
				continue
			}
			if err := writeCell(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func durationTitle(d models.Duration) string {
	if d == models.DurationTemporary {
		return "Временная"
	}
	return "Постоянная"
}
