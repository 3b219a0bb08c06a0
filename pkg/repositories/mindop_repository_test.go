//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/testhelpers"
)

// mindopTestContext holds test dependencies for mindop repository tests.
type mindopTestContext struct {
	t      *testing.T
	testDB *testhelpers.TestDB
	repo   MindOpRepository
}

// setupMindOpTest initializes the test context with the shared testcontainer.
func setupMindOpTest(t *testing.T) *mindopTestContext {
	testDB := testhelpers.GetTestDB(t)
	return &mindopTestContext{
		t:      t,
		testDB: testDB,
		repo:   NewMindOpRepository(testDB.DB),
	}
}

// cleanup removes all mindops created for the given user.
func (tc *mindopTestContext) cleanup(userID string) {
	tc.t.Helper()
	_, _ = tc.testDB.DB.Pool.Exec(context.Background(),
		"DELETE FROM mindops WHERE user_id = $1", userID)
}

// newTestMindOp returns a default-configured mindop for the given user with
// a unique agent card URL.
func newTestMindOp(userID string) *models.MindOp {
	m := models.DefaultMindOp()
	m.ID = uuid.New()
	m.UserID = userID
	m.AgentCardURL = fmt.Sprintf("https://test.local/functions/v1/a2a-service-endpoint/%s", m.ID)
	return m
}

func TestMindOpRepository_CreateAndGet(t *testing.T) {
	tc := setupMindOpTest(t)
	userID := "mindop-test-user-1"
	tc.cleanup(userID)

	ctx := context.Background()
	m := newTestMindOp(userID)

	if err := tc.repo.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	retrieved, err := tc.repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if retrieved.ID != m.ID {
		t.Errorf("expected ID %v, got %v", m.ID, retrieved.ID)
	}
	if retrieved.Name != "My MindOp" {
		t.Errorf("expected default name, got %q", retrieved.Name)
	}
	if len(retrieved.Tags) != 2 || retrieved.Tags[0] != "Personal" {
		t.Errorf("tags did not round-trip: %v", retrieved.Tags)
	}
	if retrieved.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", retrieved.Temperature)
	}
}

func TestMindOpRepository_GetByUserID_NotFound(t *testing.T) {
	tc := setupMindOpTest(t)

	_, err := tc.repo.GetByUserID(context.Background(), "nobody")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMindOpRepository_GetByUserID_FirstCreatedWins(t *testing.T) {
	tc := setupMindOpTest(t)
	userID := "mindop-test-user-2"
	tc.cleanup(userID)

	ctx := context.Background()
	first := newTestMindOp(userID)
	first.Name = "First"
	second := newTestMindOp(userID)
	second.Name = "Second"

	if err := tc.repo.Create(ctx, first); err != nil {
		t.Fatalf("Create first failed: %v", err)
	}
	if err := tc.repo.Create(ctx, second); err != nil {
		t.Fatalf("Create second failed: %v", err)
	}

	retrieved, err := tc.repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if retrieved.Name != "First" {
		t.Errorf("expected oldest row, got %q", retrieved.Name)
	}
}

func TestMindOpRepository_Create_AgentCardConflict(t *testing.T) {
	tc := setupMindOpTest(t)
	userID := "mindop-test-user-3"
	tc.cleanup(userID)

	ctx := context.Background()
	first := newTestMindOp(userID)
	if err := tc.repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := newTestMindOp(userID)
	dup.AgentCardURL = first.AgentCardURL
	err := tc.repo.Create(ctx, dup)
	if !errors.Is(err, apperrors.ErrAgentCardConflict) {
		t.Errorf("expected ErrAgentCardConflict, got %v", err)
	}
}

func TestMindOpRepository_Update(t *testing.T) {
	tc := setupMindOpTest(t)
	userID := "mindop-test-user-4"
	tc.cleanup(userID)

	ctx := context.Background()
	m := newTestMindOp(userID)
	if err := tc.repo.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	originalURL := m.AgentCardURL
	m.Name = "Renamed"
	m.Temperature = 0.2
	m.Tags = []string{"Work"}
	m.AgentCardURL = "https://test.local/spoofed"
	if err := tc.repo.Update(ctx, m); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if m.AgentCardURL != originalURL {
		t.Errorf("expected stored agent card URL scanned back, got %q", m.AgentCardURL)
	}

	retrieved, err := tc.repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if retrieved.Name != "Renamed" || retrieved.Temperature != 0.2 {
		t.Errorf("update not persisted: name=%q temp=%v", retrieved.Name, retrieved.Temperature)
	}
	if retrieved.AgentCardURL != originalURL {
		t.Errorf("agent card URL must never change on update, got %q", retrieved.AgentCardURL)
	}
	if len(retrieved.Tags) != 1 || retrieved.Tags[0] != "Work" {
		t.Errorf("tags not updated: %v", retrieved.Tags)
	}
	if !retrieved.UpdatedAt.After(retrieved.CreatedAt) {
		t.Error("expected UpdatedAt to advance past CreatedAt")
	}
}

func TestMindOpRepository_Update_WrongUser(t *testing.T) {
	tc := setupMindOpTest(t)
	userID := "mindop-test-user-5"
	tc.cleanup(userID)

	ctx := context.Background()
	m := newTestMindOp(userID)
	if err := tc.repo.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m.UserID = "someone-else"
	err := tc.repo.Update(ctx, m)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong user, got %v", err)
	}
}
