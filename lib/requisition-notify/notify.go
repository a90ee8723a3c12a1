package requisitionnotify

import (
	"bytes"
	"context"
	"text/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	requisitionhandler "job-requisition-backend/lib/requisition"
	"job-requisition-backend/lib/smtp"
	"job-requisition-backend/models"
)

var decisionTpl = template.Must(template.New("decision").Parse(`Заявка {{.ID}} на позицию "{{.PositionTitle}}" ({{.DepartmentName}}) {{if eq .Status "approved"}}согласована{{else}}отклонена{{end}}.

Инициатор: {{.RequestedBy}}, подана {{.SubmittedDate}}
Решение принял: {{.ApprovedBy}}, проверил: {{.VerifiedBy}}, дата: {{.GetApprovedDate}}
{{- if eq .Status "approved"}}
Зарплатная вилка: {{.SalaryRange}}
Бюджет: {{.Budget}}
{{- end}}
{{- with .GetRemarks}}
Комментарий: {{.}}
{{- end}}
`))

// NewInstance уведомления о решении по заявке на почту HR.
// Пустой получатель отключает отправку.
func NewInstance(mail smtp.Provider, from, recipient string) requisitionhandler.Notifier {
	return &impl{
		mail:      mail,
		from:      from,
		recipient: recipient,
	}
}

type impl struct {
	mail      smtp.Provider
	from      string
	recipient string
}

func (i *impl) Decided(ctx context.Context, rec models.JobRequisition) error {
	if i.recipient == "" {
		return nil
	}
	if !rec.Status.IsTerminal() {
		return errors.Errorf("по заявке %s еще нет решения", rec.ID)
	}
	buf := new(bytes.Buffer)
	if err := decisionTpl.Execute(buf, rec); err != nil {
		return errors.Wrap(err, "ошибка формирования текста уведомления")
	}
	subject := "заявка " + rec.ID + " согласована"
	if rec.Status == models.RequisitionStatusRejected {
		subject = "заявка " + rec.ID + " отклонена"
	}
	if err := i.mail.SendEMail(i.from, i.recipient, buf.String(), subject); err != nil {
		return errors.Wrap(err, "ошибка отправки уведомления")
	}
	log.WithField("rec_id", rec.ID).
		WithField("recipient", i.recipient).
		Info("отправлено уведомление о решении по заявке")
	return nil
}
