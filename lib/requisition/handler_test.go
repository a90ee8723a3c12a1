package requisitionhandler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"job-requisition-backend/lib/kv"
	kvmemorystore "job-requisition-backend/lib/kv/memory-store"
	requisitionid "job-requisition-backend/lib/requisition/idgen"
	requisitionstore "job-requisition-backend/lib/requisition/store"
	requisitionvalidation "job-requisition-backend/lib/requisition/validation"
	"job-requisition-backend/models"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

const testToday = "2026-10-15"

func newTestHandler(t *testing.T, opts ...Option) (Provider, *kvmemorystore.Store) {
	t.Helper()
	backend := kvmemorystore.NewInstance()
	store := requisitionstore.NewInstance(backend, "")
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewHandler(store, opts...), backend
}

func engineerDraft() requisitionapimodels.RequisitionData {
	return requisitionapimodels.RequisitionData{
		PositionTitle:    "Engineer",
		DepartmentName:   "Eng",
		RequestedBy:      "Alice",
		RequestSignature: "sig1",
		Duration:         models.DurationPermanent,
	}
}

func approveData() requisitionapimodels.ReviewData {
	return requisitionapimodels.ReviewData{
		SalaryRange:       "$80k-$100k",
		Budget:            models.BudgetSufficient,
		ApprovedBy:        "Bob",
		ApprovalSignature: "sig2",
		VerifiedBy:        "HR",
	}
}

func rejectData() requisitionapimodels.RejectData {
	return requisitionapimodels.RejectData{
		Remarks:           "no budget this quarter",
		ApprovedBy:        "Bob",
		ApprovalSignature: "sig2",
		VerifiedBy:        "HR",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run(`create then approve`, func(t *testing.T) {
		handler, _ := newTestHandler(t)

		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		require.Equal(t, models.RequisitionStatusPending, rec.Status)
		require.Nil(t, rec.EndDate)
		require.Nil(t, rec.ApprovedDate)
		require.Equal(t, testToday, rec.SubmittedDate)
		require.Equal(t, models.EmploymentFullTime, rec.EmploymentStatus)

		approved, err := handler.Approve(ctx, rec.ID, approveData())
		require.NoError(t, err)
		require.Equal(t, models.RequisitionStatusApproved, approved.Status)
		require.Equal(t, testToday, approved.GetApprovedDate())
		require.Equal(t, "$80k-$100k", approved.SalaryRange)
		require.Equal(t, models.BudgetSufficient, approved.Budget)
		require.Equal(t, "Bob", approved.ApprovedBy)
		require.Equal(t, "HR", approved.VerifiedBy)
		require.Equal(t, "sig2", approved.ApprovalSignature)
		require.Nil(t, approved.Remarks)
		require.Equal(t, rec.SubmittedDate, approved.SubmittedDate)

		stored, err := handler.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(approved, stored))
	})

	t.Run(`ids are fresh and increasing`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		prev, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, item := range prev {
			seen[item.ID] = true
		}
		for n := 0; n < 5; n++ {
			rec, err := handler.Create(ctx, engineerDraft())
			require.NoError(t, err)
			require.False(t, seen[rec.ID], "повторный идентификатор %s", rec.ID)
			for id := range seen {
				require.True(t, requisitionid.Less(id, rec.ID), "%s должен быть больше %s", rec.ID, id)
			}
			seen[rec.ID] = true
		}
	})

	t.Run(`first id after seed`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		require.Equal(t, "REQ-004", rec.ID)
	})

	t.Run(`newest first`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		first, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		second, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)

		list, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)
	})

	t.Run(`temporary keeps end date`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		draft := engineerDraft()
		draft.Duration = models.DurationTemporary
		draft.EndDate = "2027-03-31"
		draft.EmploymentStatus = models.EmploymentContract

		rec, err := handler.Create(ctx, draft)
		require.NoError(t, err)
		require.Equal(t, "2027-03-31", rec.GetEndDate())
		require.Equal(t, models.EmploymentContract, rec.EmploymentStatus)
	})

	t.Run(`validation failure persists nothing`, func(t *testing.T) {
		handler, backend := newTestHandler(t)
		_, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)
		before := backend.Raw(requisitionstore.DefaultKey)

		cases := []func(d *requisitionapimodels.RequisitionData){
			func(d *requisitionapimodels.RequisitionData) { d.PositionTitle = "" },
			func(d *requisitionapimodels.RequisitionData) { d.DepartmentName = "" },
			func(d *requisitionapimodels.RequisitionData) { d.RequestedBy = "" },
			func(d *requisitionapimodels.RequisitionData) { d.RequestSignature = "" },
			func(d *requisitionapimodels.RequisitionData) { d.Duration = models.DurationTemporary },
			func(d *requisitionapimodels.RequisitionData) { d.EndDate = "2027-01-01" },
		}
		for _, mutate := range cases {
			draft := engineerDraft()
			mutate(&draft)
			_, err = handler.Create(ctx, draft)
			_, ok := requisitionvalidation.IsValidationError(err)
			require.True(t, ok, "ожидалась ошибка валидации, получено %v", err)
		}
		require.Equal(t, before, backend.Raw(requisitionstore.DefaultKey))
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run(`unknown id`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		_, err := handler.Approve(ctx, "REQ-999", approveData())
		require.True(t, errors.Is(err, ErrNotFound))
		_, err = handler.Reject(ctx, "REQ-999", rejectData())
		require.True(t, errors.Is(err, ErrNotFound))
		_, err = handler.GetByID(ctx, "REQ-999")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run(`approve twice`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		_, err = handler.Approve(ctx, rec.ID, approveData())
		require.NoError(t, err)

		_, err = handler.Approve(ctx, rec.ID, approveData())
		require.True(t, errors.Is(err, requisitionvalidation.ErrIllegalTransition))
	})

	t.Run(`decision date never precedes submission`, func(t *testing.T) {
		now := testNow
		handler, _ := newTestHandler(t, WithClock(func() time.Time { return now }))
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		require.Equal(t, testToday, rec.SubmittedDate)

		now = testNow.AddDate(0, 0, -3)
		approved, err := handler.Approve(ctx, rec.ID, approveData())
		require.NoError(t, err)
		require.Equal(t, rec.SubmittedDate, approved.GetApprovedDate())
	})

	t.Run(`reject an approved requisition`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		approved, err := handler.Approve(ctx, rec.ID, approveData())
		require.NoError(t, err)

		_, err = handler.Reject(ctx, rec.ID, rejectData())
		require.True(t, errors.Is(err, requisitionvalidation.ErrIllegalTransition))

		stored, err := handler.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(approved, stored))
	})

	t.Run(`seeded terminal requisitions are immutable`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		_, err := handler.Approve(ctx, "REQ-002", approveData())
		require.True(t, errors.Is(err, requisitionvalidation.ErrIllegalTransition))
		_, err = handler.Reject(ctx, "REQ-001", rejectData())
		require.True(t, errors.Is(err, requisitionvalidation.ErrIllegalTransition))
	})

	t.Run(`approve without approval signature stays pending`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)

		data := approveData()
		data.ApprovalSignature = ""
		_, err = handler.Approve(ctx, rec.ID, data)
		vErr, ok := requisitionvalidation.IsValidationError(err)
		require.True(t, ok)
		require.Equal(t, requisitionvalidation.CodeMissingField, vErr.Code)

		stored, err := handler.GetByID(ctx, rec.ID)
		require.NoError(t, err)
		require.Equal(t, models.RequisitionStatusPending, stored.Status)
		require.Nil(t, stored.ApprovedDate)
	})

	t.Run(`reject sets remarks and keeps salary empty`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)

		rejected, err := handler.Reject(ctx, rec.ID, rejectData())
		require.NoError(t, err)
		require.Equal(t, models.RequisitionStatusRejected, rejected.Status)
		require.Equal(t, "no budget this quarter", rejected.GetRemarks())
		require.Equal(t, testToday, rejected.GetApprovedDate())
		require.Empty(t, rejected.SalaryRange)
		require.Equal(t, models.BudgetUnset, rejected.Budget)
	})

	t.Run(`reject without remarks`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		data := rejectData()
		data.Remarks = ""
		_, err := handler.Reject(ctx, "REQ-003", data)
		_, ok := requisitionvalidation.IsValidationError(err)
		require.True(t, ok)
	})

	t.Run(`unknown outcome`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		_, err := handler.Transition(ctx, "REQ-003", "escalate", approveData())
		require.Error(t, err)
	})

	t.Run(`notifier receives decision`, func(t *testing.T) {
		notifier := &fakeNotifier{}
		handler, _ := newTestHandler(t, WithNotifier(notifier))
		_, err := handler.Approve(ctx, "REQ-003", approveData())
		require.NoError(t, err)
		require.Len(t, notifier.decided, 1)
		require.Equal(t, "REQ-003", notifier.decided[0].ID)
	})

	t.Run(`notifier failure does not fail transition`, func(t *testing.T) {
		handler, _ := newTestHandler(t, WithNotifier(&fakeNotifier{err: errors.New("smtp down")}))
		rec, err := handler.Approve(ctx, "REQ-003", approveData())
		require.NoError(t, err)
		require.Equal(t, models.RequisitionStatusApproved, rec.Status)
	})
}

func TestRead(t *testing.T) {
	ctx := context.Background()

	t.Run(`get is idempotent`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		first, err := handler.GetByID(ctx, "REQ-002")
		require.NoError(t, err)
		for n := 0; n < 3; n++ {
			again, err := handler.GetByID(ctx, "REQ-002")
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(first, again))
		}
	})

	t.Run(`returned entity is a copy`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		rec, err := handler.GetByID(ctx, "REQ-001")
		require.NoError(t, err)
		*rec.Remarks = "changed"

		again, err := handler.GetByID(ctx, "REQ-001")
		require.NoError(t, err)
		require.Equal(t, "Approved with budget allocation for Q2", again.GetRemarks())
	})

	t.Run(`list by status`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		pending, err := handler.ListByStatus(ctx, models.RequisitionStatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, "REQ-003", pending[0].ID)

		_, err = handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		pending, err = handler.ListByStatus(ctx, models.RequisitionStatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)

		all, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)

		_, err = handler.ListByStatus(ctx, "archived")
		require.Error(t, err)
	})
}

func TestConcurrency(t *testing.T) {
	ctx := context.Background()

	t.Run(`parallel creates get unique ids`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		const workers = 20
		ids := make(chan string, workers)
		wg := sync.WaitGroup{}
		for n := 0; n < workers; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec, err := handler.Create(ctx, engineerDraft())
				if err == nil {
					ids <- rec.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[string]bool{}
		for id := range ids {
			require.False(t, seen[id], "повторный идентификатор %s", id)
			seen[id] = true
		}
		require.Len(t, seen, workers)

		all, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)
		require.Len(t, all, workers+3)
	})

	t.Run(`parallel reviews of one requisition`, func(t *testing.T) {
		handler, _ := newTestHandler(t)
		const workers = 10
		results := make(chan error, workers)
		wg := sync.WaitGroup{}
		for n := 0; n < workers; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				var err error
				if n%2 == 0 {
					_, err = handler.Approve(ctx, "REQ-003", approveData())
				} else {
					_, err = handler.Reject(ctx, "REQ-003", rejectData())
				}
				results <- err
			}(n)
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			require.True(t, errors.Is(err, requisitionvalidation.ErrIllegalTransition))
		}
		require.Equal(t, 1, succeeded)
	})

	t.Run(`retries after concurrent modification`, func(t *testing.T) {
		backend := &conflictingBackend{Store: kvmemorystore.NewInstance(), conflicts: 2}
		handler := NewHandler(requisitionstore.NewInstance(backend, ""), WithSaveAttempts(3))
		_, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)

		rec, err := handler.Create(ctx, engineerDraft())
		require.NoError(t, err)
		require.Equal(t, "REQ-004", rec.ID)
	})

	t.Run(`gives up after attempts`, func(t *testing.T) {
		backend := &conflictingBackend{Store: kvmemorystore.NewInstance(), conflicts: 10}
		handler := NewHandler(requisitionstore.NewInstance(backend, ""), WithSaveAttempts(2))
		_, err := handler.List(ctx, requisitionapimodels.RequisitionFilter{})
		require.NoError(t, err)

		_, err = handler.Create(ctx, engineerDraft())
		require.True(t, errors.Is(err, kv.ErrRevisionConflict))
	})
}

type fakeNotifier struct {
	err     error
	decided []models.JobRequisition
}

func (f *fakeNotifier) Decided(ctx context.Context, rec models.JobRequisition) error {
	f.decided = append(f.decided, rec)
	return f.err
}

// conflictingBackend отвечает конфликтом на первые conflicts записей с проверкой ревизии
type conflictingBackend struct {
	*kvmemorystore.Store
	mu        sync.Mutex
	conflicts int
}

func (c *conflictingBackend) Put(ctx context.Context, key string, value []byte, expectedRevision string) (string, error) {
	c.mu.Lock()
	inject := expectedRevision != "" && expectedRevision != kv.AnyRevision && c.conflicts > 0
	if inject {
		c.conflicts--
	}
	c.mu.Unlock()
	if inject {
		return "", kv.ErrRevisionConflict
	}
	return c.Store.Put(ctx, key, value, expectedRevision)
}
