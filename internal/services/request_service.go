package services

import (
	"errors"

	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RequestService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateRequestRequest) (*models.Request, error)
	List(db *gorm.DB, userID string, status string) ([]models.Request, error)
	UpdateStatus(db *gorm.DB, callerID, requestID string, req *dto.UpdateRequestStatusRequest) (*models.Request, error)
}

type RequestServiceImpl struct {
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
}

func NewRequestService(requestRepo repositories.RequestRepository, userRepo repositories.UserRepository) RequestService {
	return &RequestServiceImpl{requestRepo: requestRepo, userRepo: userRepo}
}

func (s *RequestServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateRequestRequest) (*models.Request, error) {
	// The target must exist and actually be a concierge.
	if _, err := s.userRepo.FindConciergeByID(db, req.ConciergeID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrConciergeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	request := &models.Request{
		Service:     req.Service,
		Details:     req.Details,
		Status:      models.RequestStatusPending,
		UserID:      userID,
		ConciergeID: req.ConciergeID,
	}
	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

// List returns the caller's requests, as requester or as assigned concierge.
func (s *RequestServiceImpl) List(db *gorm.DB, userID string, status string) ([]models.Request, error) {
	filter := models.RequestStatus(status)
	if status != "" && !models.ValidRequestStatus(filter) {
		return nil, apperrors.NewBadRequestError("unknown status filter")
	}

	requests, err := s.requestRepo.FindByParty(db, userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}

// UpdateStatus moves a request along the transition table. Only the two
// parties may touch it: the concierge drives accepted/completed, either
// side may cancel.
func (s *RequestServiceImpl) UpdateStatus(db *gorm.DB, callerID, requestID string, req *dto.UpdateRequestStatusRequest) (*models.Request, error) {
	target := models.RequestStatus(req.Status)
	if !models.ValidRequestStatus(target) {
		return nil, apperrors.NewBadRequestError("unknown status")
	}

	var request *models.Request
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		request, err = s.requestRepo.FindByID(tx, requestID)
		if err != nil {
			return err
		}

		switch {
		case callerID == request.ConciergeID:
			// concierge may drive any allowed transition
		case callerID == request.UserID:
			if target != models.RequestStatusCancelled {
				return apperrors.NewForbiddenError("clients can only cancel their requests")
			}
		default:
			return apperrors.NewForbiddenError("not a party to this request")
		}

		if !request.Status.CanTransition(target) {
			return apperrors.ErrIllegalTransition(string(request.Status), string(target))
		}

		if err := s.requestRepo.UpdateStatus(tx, requestID, target); err != nil {
			return err
		}
		request.Status = target
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.NewNotFoundError("request", "request not found")
		}
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}

	return request, nil
}
