package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"concierge_backend/internal/logger"
	"concierge_backend/internal/models"
	"concierge_backend/internal/payment"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const premiumPlanID = "premium"

type SubscriptionService interface {
	GetCurrent(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error)
	CreateCheckout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleEvent(db *gorm.DB, event *payment.Event) error
	ExpireLapsed(db *gorm.DB, now time.Time) (int, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	stripe           *payment.StripeService
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	stripe *payment.StripeService,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		stripe:           stripe,
	}
}

// GetCurrent reports the caller's plan. Free accounts get planId "free" and
// a null subscription.
func (s *SubscriptionServiceImpl) GetCurrent(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error) {
	sub, err := s.subscriptionRepo.FindActiveByUser(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &dto.SubscriptionStatusResponse{PlanID: "free", Subscription: nil}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.SubscriptionStatusResponse{PlanID: sub.PlanID, Subscription: sub}, nil
}

func (s *SubscriptionServiceImpl) CreateCheckout(ctx context.Context, db *gorm.DB, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.PlanID != premiumPlanID {
		return nil, apperrors.ErrInvalidPlan
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	url, err := s.stripe.CreateCheckoutSession(ctx, user.ID, req.PlanID, user.Email)
	if err != nil {
		logger.CtxWithError(ctx, "checkout session creation failed", err, "plan_id", req.PlanID)
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "subscription",
			"failed to create checkout session", http.StatusInternalServerError)
	}

	return &dto.CheckoutResponse{URL: url}, nil
}

// HandleEvent applies a verified payment event to local state. Unhandled
// event types are acknowledged without effect.
func (s *SubscriptionServiceImpl) HandleEvent(db *gorm.DB, event *payment.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(db, event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(db, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(db, event)
	default:
		logger.Debug("ignoring payment event", "type", event.Type)
		return nil
	}
}

// handleCheckoutCompleted activates premium in one transaction: the
// subscription row, the CONCIERGE role, the entitlement counters and the
// profile flags all land together or not at all.
func (s *SubscriptionServiceImpl) handleCheckoutCompleted(db *gorm.DB, event *payment.Event) error {
	var session payment.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return apperrors.NewBadRequestError("malformed checkout session payload")
	}

	userID := session.Metadata["userId"]
	if userID == "" {
		return apperrors.NewBadRequestError("checkout session has no userId metadata")
	}
	planID := session.Metadata["planId"]
	if planID == "" {
		planID = premiumPlanID
	}

	// A checkout session's expires_at is the payment-page deadline (about a
	// day out), not the billing period. Defaulting to a month keeps the
	// expiry sweep from cancelling a subscription that was just paid for.
	now := time.Now()
	periodEnd := now.AddDate(0, 1, 0)
	if sessionEnd := time.Unix(session.ExpiresAt, 0); session.ExpiresAt > 0 && sessionEnd.After(periodEnd) {
		periodEnd = sessionEnd
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}

		sub := &models.Subscription{
			UserID:               userID,
			PlanID:               planID,
			Status:               models.SubscriptionStatusActive,
			StripeCustomerID:     session.Customer,
			StripeSubscriptionID: session.Subscription,
			CurrentPeriodStart:   now,
			CurrentPeriodEnd:     periodEnd,
			CancelAtPeriodEnd:    false,
		}
		if err := s.subscriptionRepo.UpsertByUserID(tx, sub); err != nil {
			return err
		}

		if err := s.userRepo.UpdateRole(tx, userID, models.UserRoleConcierge); err != nil {
			return err
		}

		features := &models.PremiumFeatures{
			UserID:               userID,
			PrioritySupport:      true,
			ExtendedAvailability: true,
			CustomBranding:       true,
			AnalyticsAccess:      true,
			MaxClientsCount:      50,
			CommissionRate:       15,
			VerifiedStatus:       true,
			CanSellProducts:      true,
			CanOfferServices:     true,
			MaxProductListings:   50,
			MaxServiceListings:   20,
		}
		if err := s.userRepo.UpsertPremiumFeatures(tx, features); err != nil {
			return err
		}

		profile := &models.Profile{
			UserID:             userID,
			IsVerified:         true,
			IsPremium:          true,
			FeaturedListing:    true,
			EnhancedVisibility: true,
			PremiumBadge:       true,
		}
		return s.userRepo.UpsertProfile(tx, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("checkout session references unknown user")
		}
		if _, ok := apperrors.AsAppError(err); ok {
			return err
		}
		return apperrors.InternalError(err)
	}

	logger.Info("premium activated", "user_id", userID, "plan_id", planID)
	return nil
}

func (s *SubscriptionServiceImpl) handleSubscriptionUpdated(db *gorm.DB, event *payment.Event) error {
	var obj payment.SubscriptionObject
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		return apperrors.NewBadRequestError("malformed subscription payload")
	}

	sub, err := s.subscriptionRepo.FindByStripeSubscriptionID(db, obj.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			// Events for subscriptions we never recorded are acknowledged.
			logger.Warn("subscription update for unknown subscription", "stripe_id", obj.ID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	if obj.Status == "active" {
		sub.Status = models.SubscriptionStatusActive
	} else {
		sub.Status = models.SubscriptionStatusCancelled
	}
	if obj.CurrentPeriodEnd > 0 {
		sub.CurrentPeriodEnd = time.Unix(obj.CurrentPeriodEnd, 0)
	}
	sub.CancelAtPeriodEnd = obj.CancelAtPeriodEnd

	if err := s.subscriptionRepo.Update(db, sub); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("subscription updated", "user_id", sub.UserID, "status", sub.Status)
	return nil
}

// handleSubscriptionDeleted cancels the subscription; the role reverts to
// CLIENT only once the paid period has actually run out.
func (s *SubscriptionServiceImpl) handleSubscriptionDeleted(db *gorm.DB, event *payment.Event) error {
	var obj payment.SubscriptionObject
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil {
		return apperrors.NewBadRequestError("malformed subscription payload")
	}

	sub, err := s.subscriptionRepo.FindByStripeSubscriptionID(db, obj.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.Warn("subscription delete for unknown subscription", "stripe_id", obj.ID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		sub.Status = models.SubscriptionStatusCancelled
		sub.CancelAtPeriodEnd = false
		if obj.CurrentPeriodEnd > 0 {
			sub.CurrentPeriodEnd = time.Unix(obj.CurrentPeriodEnd, 0)
		}
		if err := s.subscriptionRepo.Update(tx, sub); err != nil {
			return err
		}

		if !sub.CurrentPeriodEnd.After(time.Now()) {
			return s.userRepo.UpdateRole(tx, sub.UserID, models.UserRoleClient)
		}
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("subscription cancelled", "user_id", sub.UserID)
	return nil
}

// ExpireLapsed is the reconciliation sweep: any ACTIVE subscription whose
// period ended in the past is cancelled and its user demoted. Covers missed
// or out-of-order webhook deliveries.
func (s *SubscriptionServiceImpl) ExpireLapsed(db *gorm.DB, now time.Time) (int, error) {
	lapsed, err := s.subscriptionRepo.FindLapsedActive(db, now)
	if err != nil {
		return 0, fmt.Errorf("find lapsed subscriptions: %w", err)
	}

	expired := 0
	for i := range lapsed {
		sub := &lapsed[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			sub.Status = models.SubscriptionStatusCancelled
			if err := s.subscriptionRepo.Update(tx, sub); err != nil {
				return err
			}
			return s.userRepo.UpdateRole(tx, sub.UserID, models.UserRoleClient)
		})
		if err != nil {
			logger.Error("failed to expire subscription", "subscription_id", sub.ID, "error", err)
			continue
		}
		expired++
		logger.Info("subscription expired", "user_id", sub.UserID, "period_end", sub.CurrentPeriodEnd)
	}

	return expired, nil
}
