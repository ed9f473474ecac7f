package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
	"gorm.io/gorm"
)

var (
	ErrIntakeNotFound      = errors.New("intake response not found")
	ErrInvalidIntakeStatus = errors.New("invalid intake status")
)

// Records are kept for two months past their base date: the contract end
// when one exists, the submission time otherwise.
const intakeRetentionMonths = 2

// IntakeService triages diagnostic-intake submissions.
type IntakeService struct {
	db    *gorm.DB
	cache *cache.Store
}

// NewIntakeService creates an IntakeService instance.
func NewIntakeService(gdb *gorm.DB, store *cache.Store) *IntakeService {
	return &IntakeService{db: gdb, cache: store}
}

// Submit records a new intake response from the public diagnostic form.
func (s *IntakeService) Submit(name, email, topic, details string) (*db.IntakeResponse, error) {
	response := db.IntakeResponse{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Topic:     strings.TrimSpace(topic),
		Details:   strings.TrimSpace(details),
		Status:    db.IntakeStatusNew,
		ExpiresAt: time.Now().AddDate(0, intakeRetentionMonths, 0),
	}

	if err := s.db.Create(&response).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TagAdminIntakes)
	return &response, nil
}

// List returns every intake response newest first, cached under the admin
// intake tag.
func (s *IntakeService) List() ([]db.IntakeResponse, error) {
	value, err := s.cache.GetOrCompute(
		"intakes:admin:list",
		[]string{cache.TagAdminIntakes},
		func() (any, error) {
			var responses []db.IntakeResponse
			if err := s.db.Order("created_at desc, id desc").Find(&responses).Error; err != nil {
				return nil, err
			}
			return responses, nil
		},
	)
	if err != nil {
		return nil, err
	}
	responses, _ := value.([]db.IntakeResponse)
	return responses, nil
}

// UpdateStatus moves an intake response to a new triage state and recomputes
// its expiry. ContractEndAt is stored only while the status is contracted
// and a valid date was supplied; any other transition removes it.
func (s *IntakeService) UpdateStatus(id uint, status string, contractEnd *time.Time) (*db.IntakeResponse, error) {
	if !validIntakeStatus(status) {
		return nil, ErrInvalidIntakeStatus
	}

	var response db.IntakeResponse
	if err := s.db.First(&response, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntakeNotFound
		}
		return nil, err
	}

	base := response.CreatedAt
	var keptContractEnd *time.Time
	if status == db.IntakeStatusContracted && contractEnd != nil && !contractEnd.IsZero() {
		end := *contractEnd
		base = end
		keptContractEnd = &end
	}

	response.Status = status
	response.ContractEndAt = keptContractEnd
	response.ExpiresAt = base.AddDate(0, intakeRetentionMonths, 0)

	// Save writes ContractEndAt even when nil, clearing the stored value on
	// any transition away from contracted.
	if err := s.db.Save(&response).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.TagAdminIntakes)
	return &response, nil
}

func validIntakeStatus(status string) bool {
	for _, candidate := range db.IntakeStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}
