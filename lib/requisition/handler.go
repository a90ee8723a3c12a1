package requisitionhandler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/lib/kv"
	requisitionid "job-requisition-backend/lib/requisition/idgen"
	requisitionstore "job-requisition-backend/lib/requisition/store"
	requisitionvalidation "job-requisition-backend/lib/requisition/validation"
	"job-requisition-backend/models"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

// ErrNotFound заявка с указанным идентификатором отсутствует
var ErrNotFound = errors.New("заявка не найдена")

const defaultSaveAttempts = 3

type Provider interface {
	Create(ctx context.Context, data requisitionapimodels.RequisitionData) (models.JobRequisition, error)
	Approve(ctx context.Context, id string, data requisitionapimodels.ReviewData) (models.JobRequisition, error)
	Reject(ctx context.Context, id string, data requisitionapimodels.RejectData) (models.JobRequisition, error)
	Transition(ctx context.Context, id string, outcome models.Outcome, data requisitionapimodels.ReviewData) (models.JobRequisition, error)
	GetByID(ctx context.Context, id string) (models.JobRequisition, error)
	List(ctx context.Context, filter requisitionapimodels.RequisitionFilter) ([]models.JobRequisition, error)
	ListByStatus(ctx context.Context, status models.RequisitionStatus) ([]models.JobRequisition, error)
}

// Notifier получает заявку после согласования или отклонения
type Notifier interface {
	Decided(ctx context.Context, rec models.JobRequisition) error
}

type Option func(*impl)

func WithClock(now func() time.Time) Option {
	return func(i *impl) {
		i.now = now
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(i *impl) {
		i.notifier = notifier
	}
}

// WithSaveAttempts сколько раз повторять операцию при конкурентном изменении хранилища
func WithSaveAttempts(attempts int) Option {
	return func(i *impl) {
		if attempts > 0 {
			i.saveAttempts = attempts
		}
	}
}

func NewHandler(store requisitionstore.Provider, opts ...Option) Provider {
	i := &impl{
		store:        store,
		now:          time.Now,
		saveAttempts: defaultSaveAttempts,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type impl struct {
	// mu сериализует чтение-изменение-запись коллекции
	mu           sync.Mutex
	store        requisitionstore.Provider
	notifier     Notifier
	now          func() time.Time
	saveAttempts int
}

func (i *impl) today() string {
	return i.now().Format(models.DateLayout)
}

func (i *impl) Create(ctx context.Context, data requisitionapimodels.RequisitionData) (models.JobRequisition, error) {
	logger := log.WithField("position_title", data.PositionTitle).
		WithField("department_name", data.DepartmentName)
	if err := requisitionvalidation.ValidateCreate(data); err != nil {
		logger.WithError(err).Info("заявка не прошла проверку")
		return models.JobRequisition{}, err
	}

	var created models.JobRequisition
	err := i.mutate(ctx, func(items []models.JobRequisition) ([]models.JobRequisition, error) {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		created = newRequisition(data)
		created.ID = requisitionid.NextAfter(ids)
		created.SubmittedDate = i.today()
		result := make([]models.JobRequisition, 0, len(items)+1)
		result = append(result, created)
		return append(result, items...), nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания заявки")
		return models.JobRequisition{}, err
	}
	logger.WithField("rec_id", created.ID).Info("создана заявка")
	return created.Clone(), nil
}

func newRequisition(data requisitionapimodels.RequisitionData) models.JobRequisition {
	rec := models.JobRequisition{
		PositionTitle:    strings.TrimSpace(data.PositionTitle),
		DepartmentName:   strings.TrimSpace(data.DepartmentName),
		StartDate:        strings.TrimSpace(data.StartDate),
		Skills:           data.Skills,
		Explanation:      data.Explanation,
		Duration:         data.Duration.OrDefault(),
		EmploymentStatus: data.EmploymentStatus.OrDefault(),
		RequestedBy:      strings.TrimSpace(data.RequestedBy),
		RequestSignature: data.RequestSignature,
		Status:           models.RequisitionStatusPending,
		ApprovedDate:     nil,
	}
	if rec.Duration == models.DurationTemporary {
		rec.EndDate = models.StrPtr(strings.TrimSpace(data.EndDate))
	}
	return rec
}

func (i *impl) Approve(ctx context.Context, id string, data requisitionapimodels.ReviewData) (models.JobRequisition, error) {
	return i.Transition(ctx, id, models.OutcomeApprove, data)
}

func (i *impl) Reject(ctx context.Context, id string, data requisitionapimodels.RejectData) (models.JobRequisition, error) {
	return i.Transition(ctx, id, models.OutcomeReject, data.ToReview())
}

func (i *impl) Transition(ctx context.Context, id string, outcome models.Outcome, data requisitionapimodels.ReviewData) (models.JobRequisition, error) {
	logger := log.WithField("rec_id", id).
		WithField("outcome", outcome)
	target, err := outcome.TargetStatus()
	if err != nil {
		return models.JobRequisition{}, err
	}

	var updated models.JobRequisition
	err = i.mutate(ctx, func(items []models.JobRequisition) ([]models.JobRequisition, error) {
		idx := findIndex(items, id)
		if idx < 0 {
			return nil, ErrNotFound
		}
		current := items[idx]
		if vErr := requisitionvalidation.ValidateTransition(current.Status, target); vErr != nil {
			return nil, vErr
		}
		var vErr error
		switch outcome {
		case models.OutcomeApprove:
			vErr = requisitionvalidation.ValidateApprove(current, data)
		case models.OutcomeReject:
			vErr = requisitionvalidation.ValidateReject(current, data)
		}
		if vErr != nil {
			return nil, vErr
		}
		updated = i.applyReview(current, target, data)
		result := make([]models.JobRequisition, len(items))
		copy(result, items)
		result[idx] = updated
		return result, nil
	})
	if err != nil {
		logger.WithError(err).Info("заявка не рассмотрена")
		return models.JobRequisition{}, err
	}
	logger.WithField("status", updated.Status).Info("заявка рассмотрена")
	i.notify(ctx, updated)
	return updated.Clone(), nil
}

func (i *impl) applyReview(current models.JobRequisition, target models.RequisitionStatus, data requisitionapimodels.ReviewData) models.JobRequisition {
	rec := current.Clone()
	rec.Status = target
	approvedDate := i.today()
	if approvedDate < rec.SubmittedDate {
		// часы ушли назад относительно даты подачи
		approvedDate = rec.SubmittedDate
	}
	rec.ApprovedDate = models.StrPtr(approvedDate)
	if target == models.RequisitionStatusApproved {
		rec.SalaryRange = strings.TrimSpace(data.SalaryRange)
		rec.Budget = data.Budget
	}
	rec.Remarks = models.StrPtr(strings.TrimSpace(data.Remarks))
	rec.ApprovedBy = strings.TrimSpace(data.ApprovedBy)
	rec.ApprovalSignature = data.ApprovalSignature
	rec.VerifiedBy = strings.TrimSpace(data.VerifiedBy)
	return rec
}

func (i *impl) notify(ctx context.Context, rec models.JobRequisition) {
	if i.notifier == nil {
		return
	}
	if err := i.notifier.Decided(ctx, rec); err != nil {
		log.WithField("rec_id", rec.ID).
			WithError(err).
			Warn("ошибка отправки уведомления о решении по заявке")
	}
}

func (i *impl) GetByID(ctx context.Context, id string) (models.JobRequisition, error) {
	items, err := i.load(ctx)
	if err != nil {
		return models.JobRequisition{}, err
	}
	idx := findIndex(items, id)
	if idx < 0 {
		return models.JobRequisition{}, ErrNotFound
	}
	return items[idx].Clone(), nil
}

func (i *impl) List(ctx context.Context, filter requisitionapimodels.RequisitionFilter) ([]models.JobRequisition, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.JobRequisition, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			result = append(result, item.Clone())
		}
	}
	return result, nil
}

func (i *impl) ListByStatus(ctx context.Context, status models.RequisitionStatus) ([]models.JobRequisition, error) {
	return i.List(ctx, requisitionapimodels.RequisitionFilter{Status: status})
}

func (i *impl) load(ctx context.Context) ([]models.JobRequisition, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	items, err := i.store.LoadAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок")
	}
	return items, nil
}

// mutate чтение, изменение и запись коллекции одной операцией.
// При конкурентной записи в хранилище операция повторяется на свежих данных.
func (i *impl) mutate(ctx context.Context, fn func(items []models.JobRequisition) ([]models.JobRequisition, error)) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var err error
	for attempt := 1; attempt <= i.saveAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		var snapshot requisitionstore.Snapshot
		snapshot, err = i.store.Load(ctx)
		if err != nil {
			return errors.Wrap(err, "ошибка получения заявок")
		}
		var items []models.JobRequisition
		items, err = fn(snapshot.Items)
		if err != nil {
			return err
		}
		_, err = i.store.Save(ctx, requisitionstore.Snapshot{Items: items, Revision: snapshot.Revision})
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrRevisionConflict) {
			return errors.Wrap(err, "ошибка сохранения заявок")
		}
		log.WithField("attempt", attempt).Warn("заявки изменены другим процессом, повторяем операцию")
	}
	return err
}

func findIndex(items []models.JobRequisition, id string) int {
	for idx, item := range items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}
