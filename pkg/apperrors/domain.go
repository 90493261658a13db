package apperrors

import "net/http"

// Predefined domain errors shared across services. Duplicate email and
// duplicate review map to 400 rather than 409: the public API surfaces them
// as business validation failures with a stable message.

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Cet email est déjà utilisé",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrMissingFields = New(
	CodeValidationFailed,
	"validation",
	"Tous les champs sont requis",
	http.StatusBadRequest,
)

var ErrPremiumRequired = New(
	CodeForbidden,
	"subscription",
	"Premium subscription required",
	http.StatusForbidden,
)

var ErrProductLimitReached = New(
	CodeLimitExceeded,
	"marketplace",
	"Maximum product listings reached",
	http.StatusBadRequest,
)

var ErrServiceLimitReached = New(
	CodeLimitExceeded,
	"marketplace",
	"Maximum service listings reached",
	http.StatusBadRequest,
)

var ErrReviewAlreadyExists = New(
	CodeAlreadyExists,
	"review",
	"You have already reviewed this concierge",
	http.StatusBadRequest,
)

var ErrInvalidRating = New(
	CodeValidationFailed,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

var ErrConciergeNotFound = New(
	CodeNotFound,
	"concierge",
	"Concierge not found",
	http.StatusNotFound,
)

var ErrInvalidPlan = New(
	CodeValidationFailed,
	"subscription",
	"Unknown subscription plan",
	http.StatusBadRequest,
)

var ErrBadWebhookSignature = New(
	CodeInvalidSignature,
	"payment",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

// ErrIllegalTransition is returned when a status update is not present in
// the request transition table.
func ErrIllegalTransition(from, to string) *AppError {
	return New(
		CodeInvalidStatus,
		"request",
		"Illegal status transition: "+from+" -> "+to,
		http.StatusBadRequest,
	)
}
