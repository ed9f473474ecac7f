package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitekit/internal/db"
)

func TestUpdateIntakeStatusRespondsWithDeadline(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	intake := db.IntakeResponse{
		Name:      "Kim",
		Email:     "kim@example.com",
		Topic:     "Audit",
		Status:    db.IntakeStatusNew,
		ExpiresAt: time.Now().AddDate(0, 2, 0),
	}
	if err := db.DB.Create(&intake).Error; err != nil {
		t.Fatalf("failed to seed intake: %v", err)
	}

	contractEnd := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"status":        "contracted",
		"contractEndAt": contractEnd,
	}
	c, w := testContext(jsonRequest(t, http.MethodPut, payload),
		gin.Param{Key: "id", Value: fmt.Sprint(intake.ID)})
	api.UpdateIntakeStatus(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID        uint      `json:"id"`
		Status    string    `json:"status"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != db.IntakeStatusContracted {
		t.Fatalf("expected contracted status, got %q", resp.Status)
	}
	want := contractEnd.AddDate(0, 2, 0)
	if !resp.ExpiresAt.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, resp.ExpiresAt)
	}
}

func TestUpdateIntakeStatusRejectsUnknownStatus(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	payload := map[string]any{"status": "archived"}
	c, w := testContext(jsonRequest(t, http.MethodPut, payload),
		gin.Param{Key: "id", Value: "1"})
	api.UpdateIntakeStatus(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
