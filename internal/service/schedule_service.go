package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/repository"
	"github.com/cantouch/socialflow-backend/pkg/logger"
)

// ScheduleService owns the authoritative in-memory schedule. The persisted
// collection is read once at startup; every mutation rewrites the whole
// value through the store. Mutations originate from single user actions, so
// a plain mutex is all the coordination needed.
type ScheduleService struct {
	mu        sync.Mutex
	store     repository.ScheduleStore
	campaigns []domain.ScheduledCampaign
}

// NewScheduleService loads the persisted schedule. A load failure is logged
// and treated as an empty schedule rather than refusing to start.
func NewScheduleService(ctx context.Context, store repository.ScheduleStore) *ScheduleService {
	campaigns, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted schedule, starting empty: %v", err)
		campaigns = []domain.ScheduledCampaign{}
	}
	return &ScheduleService{store: store, campaigns: campaigns}
}

// Save freezes the campaign input and its generated content into a new
// schedule entry. The input must carry a schedule date.
func (s *ScheduleService) Save(ctx context.Context, info domain.BrandInfo, content domain.GeneratedContent) (string, error) {
	if info.ScheduleDate == "" {
		return "", common.ErrMissingScheduleDate
	}

	campaign := domain.ScheduledCampaign{
		ID:               uuid.New().String(),
		BrandInfo:        info.Clone(),
		GeneratedContent: content.Clone(),
		CreatedAt:        time.Now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns = append(s.campaigns, campaign)
	if err := s.persistLocked(ctx); err != nil {
		s.campaigns = s.campaigns[:len(s.campaigns)-1]
		return "", err
	}
	return campaign.ID, nil
}

// Delete removes the campaign with the given id
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.campaigns {
		if c.ID == id {
			removed := c
			s.campaigns = append(s.campaigns[:i], s.campaigns[i+1:]...)
			if err := s.persistLocked(ctx); err != nil {
				s.campaigns = append(s.campaigns, removed)
				return err
			}
			return nil
		}
	}
	return common.ErrCampaignNotFound
}

// Duplicate deep-copies the campaign with the given id under a new identity.
// Edits to the copy never affect the original.
func (s *ScheduleService) Duplicate(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.campaigns {
		if c.ID == id {
			dup := c.Clone()
			dup.ID = uuid.New().String()
			dup.CreatedAt = time.Now().UnixMilli()

			s.campaigns = append(s.campaigns, dup)
			if err := s.persistLocked(ctx); err != nil {
				s.campaigns = s.campaigns[:len(s.campaigns)-1]
				return "", err
			}
			return dup.ID, nil
		}
	}
	return "", common.ErrCampaignNotFound
}

// List returns independent copies of all campaigns sorted by schedule date
// ascending; campaigns without a parseable date sort first.
func (s *ScheduleService) List() []domain.ScheduledCampaign {
	s.mu.Lock()
	out := make([]domain.ScheduledCampaign, len(s.campaigns))
	for i, c := range s.campaigns {
		out[i] = c.Clone()
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduleTime().Before(out[j].ScheduleTime())
	})
	return out
}

// Count returns the number of scheduled campaigns
func (s *ScheduleService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.campaigns)
}

func (s *ScheduleService) persistLocked(ctx context.Context) error {
	return s.store.Save(ctx, s.campaigns)
}
