package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Concierge    *ConciergeHandler
	Specialty    *SpecialtyHandler
	Listing      *ListingHandler
	Marketplace  *MarketplaceHandler
	Request      *RequestHandler
	Message      *MessageHandler
	Review       *ReviewHandler
	Subscription *SubscriptionHandler
	Webhook      *WebhookHandler
	Dashboard    *DashboardHandler
}
