package services

import (
	"errors"

	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardService interface {
	Stats(db *gorm.DB, userID string) (*dto.DashboardStats, error)
}

type DashboardServiceImpl struct {
	requestRepo      repositories.RequestRepository
	listingRepo      repositories.ListingRepository
	messageRepo      repositories.MessageRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewDashboardService(
	requestRepo repositories.RequestRepository,
	listingRepo repositories.ListingRepository,
	messageRepo repositories.MessageRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) DashboardService {
	return &DashboardServiceImpl{
		requestRepo:      requestRepo,
		listingRepo:      listingRepo,
		messageRepo:      messageRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Stats gathers the dashboard counters in parallel. Each goroutine gets its
// own session off the shared handle; gorm connections are pooled underneath.
func (s *DashboardServiceImpl) Stats(db *gorm.DB, userID string) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	var g errgroup.Group

	g.Go(func() error {
		count, err := s.requestRepo.CountByParty(db.Session(&gorm.Session{}), userID)
		if err != nil {
			return err
		}
		stats.TotalRequests = count
		return nil
	})

	g.Go(func() error {
		count, err := s.listingRepo.CountActiveByUser(db.Session(&gorm.Session{}), userID)
		if err != nil {
			return err
		}
		stats.ActiveListings = count
		return nil
	})

	g.Go(func() error {
		count, err := s.messageRepo.CountByParty(db.Session(&gorm.Session{}), userID)
		if err != nil {
			return err
		}
		stats.Messages = count
		return nil
	})

	g.Go(func() error {
		sub, err := s.subscriptionRepo.FindActiveByUser(db.Session(&gorm.Session{}), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrSubscriptionNotFound) {
				return nil
			}
			return err
		}
		stats.Subscription = sub
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}
