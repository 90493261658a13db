package models

type UserRole string
type ListingStatus string
type RequestStatus string
type SubscriptionStatus string

const (
	UserRoleClient    UserRole = "CLIENT"
	UserRoleConcierge UserRole = "CONCIERGE"
	UserRoleAdmin     UserRole = "ADMIN"

	ListingStatusActive   ListingStatus = "ACTIVE"
	ListingStatusInactive ListingStatus = "INACTIVE"
	ListingStatusSold     ListingStatus = "SOLD"

	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"

	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// requestTransitions is the fixed transition table for Request.status.
// Terminal states (completed, cancelled) have no outgoing edges.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted: {RequestStatusCompleted, RequestStatusCancelled},
}

// CanTransition reports whether from -> to is an allowed request status
// change.
func (from RequestStatus) CanTransition(to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleClient, UserRoleConcierge, UserRoleAdmin:
		return true
	}
	return false
}

func ValidRequestStatus(status RequestStatus) bool {
	switch status {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}
