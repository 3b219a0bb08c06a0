package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindgrate/mindgrate-engine/pkg/models"
)

// fakeClock is a Clock with a settable time that records sleeps instead of
// waiting.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

// mockMindOpRepo is a hand-rolled MindOpRepository backed by function fields.
type mockMindOpRepo struct {
	getByUserIDFunc func(ctx context.Context, userID string) (*models.MindOp, error)
	createFunc      func(ctx context.Context, m *models.MindOp) error
	updateFunc      func(ctx context.Context, m *models.MindOp) error

	createCalls int
	updateCalls int
}

func (m *mockMindOpRepo) GetByUserID(ctx context.Context, userID string) (*models.MindOp, error) {
	return m.getByUserIDFunc(ctx, userID)
}

func (m *mockMindOpRepo) Create(ctx context.Context, mo *models.MindOp) error {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, mo)
	}
	return nil
}

func (m *mockMindOpRepo) Update(ctx context.Context, mo *models.MindOp) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, mo)
	}
	return nil
}

// mockDataSourceRepo is a hand-rolled DataSourceRepository.
type mockDataSourceRepo struct {
	createFunc func(ctx context.Context, ds *models.DataSource) error
	listFunc   func(ctx context.Context, mindopID uuid.UUID) ([]*models.DataSource, error)

	createCalls int
	created     []*models.DataSource
}

func (m *mockDataSourceRepo) Create(ctx context.Context, ds *models.DataSource) error {
	m.createCalls++
	m.created = append(m.created, ds)
	if m.createFunc != nil {
		return m.createFunc(ctx, ds)
	}
	return nil
}

func (m *mockDataSourceRepo) ListByMindOp(ctx context.Context, mindopID uuid.UUID) ([]*models.DataSource, error) {
	return m.listFunc(ctx, mindopID)
}
