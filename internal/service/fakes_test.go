package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/queue"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	seq     int
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

type fakeComplaintRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{byID: make(map[string]*domain.Complaint)}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	complaint.ID = fmt.Sprintf("complaint-%d", r.seq)
	stored := *complaint
	r.byID[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *complaint
	return &copied, nil
}

func (r *fakeComplaintRepo) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, complaint := range r.byID {
		if filter.Status != nil && complaint.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && complaint.Priority != *filter.Priority {
			continue
		}
		if filter.Category != nil && complaint.Category != *filter.Category {
			continue
		}
		result = append(result, *complaint)
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeComplaintRepo) ListByOwner(_ context.Context, userID string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, complaint := range r.byID {
		if complaint.UserID == userID {
			result = append(result, *complaint)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	complaint.Status = status
	return nil
}

func (r *fakeComplaintRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func sortNewestFirst(complaints []domain.Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].DateSubmitted.After(complaints[j].DateSubmitted)
	})
}

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

type fakeQueue struct {
	mu      sync.Mutex
	jobs    []queue.Job
	failErr error
}

func (q *fakeQueue) Enqueue(_ context.Context, job queue.Job) error {
	if q.failErr != nil {
		return q.failErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Dequeue(_ context.Context) (*queue.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil, nil
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return &job, nil
}

func (q *fakeQueue) queued() []queue.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queue.Job{}, q.jobs...)
}
