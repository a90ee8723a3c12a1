package requisitiondelay

import (
	"context"
	"time"

	requisitionhandler "job-requisition-backend/lib/requisition"
	"job-requisition-backend/models"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

// Wrap добавляет искусственную задержку перед каждой операцией сервиса.
// При нулевой задержке возвращает исходный сервис.
func Wrap(next requisitionhandler.Provider, delay time.Duration) requisitionhandler.Provider {
	if delay <= 0 {
		return next
	}
	return &impl{next: next, delay: delay}
}

type impl struct {
	next  requisitionhandler.Provider
	delay time.Duration
}

func (i *impl) wait(ctx context.Context) error {
	timer := time.NewTimer(i.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (i *impl) Create(ctx context.Context, data requisitionapimodels.RequisitionData) (models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return models.JobRequisition{}, err
	}
	return i.next.Create(ctx, data)
}

func (i *impl) Approve(ctx context.Context, id string, data requisitionapimodels.ReviewData) (models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return models.JobRequisition{}, err
	}
	return i.next.Approve(ctx, id, data)
}

func (i *impl) Reject(ctx context.Context, id string, data requisitionapimodels.RejectData) (models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return models.JobRequisition{}, err
	}
	return i.next.Reject(ctx, id, data)
}

func (i *impl) Transition(ctx context.Context, id string, outcome models.Outcome, data requisitionapimodels.ReviewData) (models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return models.JobRequisition{}, err
	}
	return i.next.Transition(ctx, id, outcome, data)
}

func (i *impl) GetByID(ctx context.Context, id string) (models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return models.JobRequisition{}, err
	}
	return i.next.GetByID(ctx, id)
}

func (i *impl) List(ctx context.Context, filter requisitionapimodels.RequisitionFilter) ([]models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	return i.next.List(ctx, filter)
}

func (i *impl) ListByStatus(ctx context.Context, status models.RequisitionStatus) ([]models.JobRequisition, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	return i.next.ListByStatus(ctx, status)
}
