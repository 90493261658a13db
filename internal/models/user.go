package models

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'CLIENT'" json:"role"`
	Image        string   `json:"image"`
	Bio          string   `json:"bio"`
	// Rating is the arithmetic mean of received review ratings, maintained
	// transactionally on review creation. 0 while no reviews exist.
	Rating float64 `gorm:"default:0" json:"rating"`

	Specialties     []Specialty      `gorm:"many2many:user_specialties" json:"specialties,omitempty"`
	Profile         *Profile         `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	PremiumFeatures *PremiumFeatures `gorm:"foreignKey:UserID" json:"premiumFeatures,omitempty"`
	Subscription    *Subscription    `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
}

// Profile caches presentation flags for a concierge.
type Profile struct {
	BaseModel
	UserID             string  `gorm:"uniqueIndex;not null" json:"userId"`
	Rating             float64 `gorm:"default:0" json:"rating"`
	IsVerified         bool    `gorm:"default:false" json:"isVerified"`
	IsPremium          bool    `gorm:"default:false" json:"isPremium"`
	FeaturedListing    bool    `gorm:"default:false" json:"featuredListing"`
	EnhancedVisibility bool    `gorm:"default:false" json:"enhancedVisibility"`
	PremiumBadge       bool    `gorm:"default:false" json:"premiumBadge"`
}

// PremiumFeatures holds the entitlement counters granted on subscription
// checkout.
type PremiumFeatures struct {
	BaseModel
	UserID               string `gorm:"uniqueIndex;not null" json:"userId"`
	PrioritySupport      bool   `gorm:"default:false" json:"prioritySupport"`
	ExtendedAvailability bool   `gorm:"default:false" json:"extendedAvailability"`
	CustomBranding       bool   `gorm:"default:false" json:"customBranding"`
	AnalyticsAccess      bool   `gorm:"default:false" json:"analyticsAccess"`
	MaxClientsCount      int    `gorm:"default:0" json:"maxClientsCount"`
	CommissionRate       int    `gorm:"default:0" json:"commissionRate"`
	VerifiedStatus       bool   `gorm:"default:false" json:"verifiedStatus"`
	CanSellProducts      bool   `gorm:"default:false" json:"canSellProducts"`
	CanOfferServices     bool   `gorm:"default:false" json:"canOfferServices"`
	MaxProductListings   int    `gorm:"default:0" json:"maxProductListings"`
	MaxServiceListings   int    `gorm:"default:0" json:"maxServiceListings"`
}

type Specialty struct {
	BaseModel
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Users []User `gorm:"many2many:user_specialties" json:"-"`
}
