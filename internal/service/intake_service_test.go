package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
)

func seedIntake(t *testing.T, createdAt time.Time) *db.IntakeResponse {
	t.Helper()
	response := db.IntakeResponse{
		Name:   "Taro",
		Email:  "taro@example.com",
		Topic:  "infra",
		Status: db.IntakeStatusNew,
	}
	if err := db.DB.Create(&response).Error; err != nil {
		t.Fatalf("failed to seed intake: %v", err)
	}
	if err := db.DB.Model(&response).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate intake: %v", err)
	}
	response.CreatedAt = createdAt
	return &response
}

func TestIntakeExpiryFromCreationDate(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	createdAt := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seeded := seedIntake(t, createdAt)

	svc := NewIntakeService(db.DB, cache.New())
	updated, err := svc.UpdateStatus(seeded.ID, db.IntakeStatusContracted, nil)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !updated.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, updated.ExpiresAt)
	}
	if updated.ContractEndAt != nil {
		t.Fatal("expected no contract end when none was supplied")
	}
}

func TestIntakeExpiryFromContractEnd(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	createdAt := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seeded := seedIntake(t, createdAt)

	svc := NewIntakeService(db.DB, cache.New())
	contractEnd := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateStatus(seeded.ID, db.IntakeStatusContracted, &contractEnd)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	want := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !updated.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, updated.ExpiresAt)
	}
	if updated.ContractEndAt == nil || !updated.ContractEndAt.Equal(contractEnd) {
		t.Fatalf("expected contract end stored, got %v", updated.ContractEndAt)
	}
}

func TestIntakeRevertRemovesContractEnd(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	createdAt := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	seeded := seedIntake(t, createdAt)

	svc := NewIntakeService(db.DB, cache.New())
	contractEnd := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.UpdateStatus(seeded.ID, db.IntakeStatusContracted, &contractEnd); err != nil {
		t.Fatalf("contract UpdateStatus failed: %v", err)
	}

	if _, err := svc.UpdateStatus(seeded.ID, db.IntakeStatusClosed, nil); err != nil {
		t.Fatalf("revert UpdateStatus failed: %v", err)
	}

	var stored db.IntakeResponse
	if err := db.DB.First(&stored, seeded.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.ContractEndAt != nil {
		t.Fatalf("expected contract end removed, got %v", stored.ContractEndAt)
	}

	want := createdAt.AddDate(0, 2, 0)
	if !stored.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry back on creation base %v, got %v", want, stored.ExpiresAt)
	}
}

func TestIntakeRejectsUnknownStatusAndMissingID(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewIntakeService(db.DB, cache.New())

	if _, err := svc.UpdateStatus(1, "archived", nil); !errors.Is(err, ErrInvalidIntakeStatus) {
		t.Fatalf("expected ErrInvalidIntakeStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(9999, db.IntakeStatusReviewing, nil); !errors.Is(err, ErrIntakeNotFound) {
		t.Fatalf("expected ErrIntakeNotFound, got %v", err)
	}
}

func TestIntakeSubmitSetsRetentionWindow(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewIntakeService(db.DB, cache.New())
	response, err := svc.Submit("Hana", "hana@example.com", "security", "audit request")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if response.Status != db.IntakeStatusNew {
		t.Fatalf("expected status new, got %q", response.Status)
	}
	if response.ExpiresAt.Before(time.Now().AddDate(0, 1, 27)) {
		t.Fatalf("expected expiry about two months out, got %v", response.ExpiresAt)
	}
}
