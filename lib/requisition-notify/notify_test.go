package requisitionnotify

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"job-requisition-backend/models"
)

type mail struct {
	from, to, message, subject string
}

type fakeSmtp struct {
	sent []mail
	err  error
}

func (f *fakeSmtp) SendEMail(from, to, message, subject string) error {
	f.sent = append(f.sent, mail{from: from, to: to, message: message, subject: subject})
	return f.err
}

func approved() models.JobRequisition {
	return models.JobRequisition{
		ID:             "REQ-004",
		PositionTitle:  "Engineer",
		DepartmentName: "Eng",
		RequestedBy:    "Alice",
		SubmittedDate:  "2026-10-15",
		Status:         models.RequisitionStatusApproved,
		SalaryRange:    "$80k-$100k",
		Budget:         models.BudgetSufficient,
		ApprovedBy:     "Bob",
		VerifiedBy:     "HR",
		ApprovedDate:   models.StrPtr("2026-10-15"),
	}
}

func TestDecided(t *testing.T) {
	ctx := context.Background()

	t.Run(`approved`, func(t *testing.T) {
		mailer := &fakeSmtp{}
		require.NoError(t, NewInstance(mailer, "robot@example.com", "hr@example.com").Decided(ctx, approved()))
		require.Len(t, mailer.sent, 1)
		msg := mailer.sent[0]
		require.Equal(t, "hr@example.com", msg.to)
		require.Equal(t, "robot@example.com", msg.from)
		require.Equal(t, "заявка REQ-004 согласована", msg.subject)
		require.Contains(t, msg.message, `Заявка REQ-004 на позицию "Engineer" (Eng) согласована.`)
		require.Contains(t, msg.message, "Зарплатная вилка: $80k-$100k")
		require.NotContains(t, msg.message, "Комментарий")
	})

	t.Run(`rejected`, func(t *testing.T) {
		rec := approved()
		rec.Status = models.RequisitionStatusRejected
		rec.SalaryRange = ""
		rec.Budget = models.BudgetUnset
		rec.Remarks = models.StrPtr("no budget")
		mailer := &fakeSmtp{}
		require.NoError(t, NewInstance(mailer, "", "hr@example.com").Decided(ctx, rec))
		require.Len(t, mailer.sent, 1)
		require.Equal(t, "заявка REQ-004 отклонена", mailer.sent[0].subject)
		require.Contains(t, mailer.sent[0].message, "Комментарий: no budget")
		require.NotContains(t, mailer.sent[0].message, "Зарплатная вилка")
	})

	t.Run(`no recipient`, func(t *testing.T) {
		mailer := &fakeSmtp{}
		require.NoError(t, NewInstance(mailer, "", "").Decided(ctx, approved()))
		require.Empty(t, mailer.sent)
	})

	t.Run(`pending requisition`, func(t *testing.T) {
		rec := approved()
		rec.Status = models.RequisitionStatusPending
		require.Error(t, NewInstance(&fakeSmtp{}, "", "hr@example.com").Decided(ctx, rec))
	})

	t.Run(`smtp failure`, func(t *testing.T) {
		mailer := &fakeSmtp{err: errors.New("down")}
		require.Error(t, NewInstance(mailer, "", "hr@example.com").Decided(ctx, approved()))
	})
}
