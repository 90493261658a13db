package app

import (
	"concierge_backend/internal/logger"
	"concierge_backend/internal/repositories"

	"gorm.io/gorm"
)

// specialtyNames is the canonical concierge specialty catalogue, seeded at
// startup. Grouped by service family.
var specialtyNames = []string{
	// Transport
	"Private Jets",
	"Luxury Yachts",
	"Classic Cars",
	"Luxury Vehicles",
	"Private Chauffeur",

	// Real estate
	"Luxury Properties",
	"Vacation Villas",
	"Penthouses",
	"Private Islands",
	"Castles",

	// Art and collection
	"Contemporary Art",
	"Antiques",
	"Rare Artworks",
	"Collectibles",
	"Luxury Auctions",

	// Fashion and accessories
	"Haute Couture",
	"Vintage Fashion",
	"Rare Accessories",
	"Fine Jewelry",
	"Luxury Watches",

	// Events and experiences
	"Private Events",
	"Luxury Weddings",
	"Exclusive Parties",
	"VIP Experiences",
	"VIP Access",

	// Lifestyle and wellness
	"Luxury Spas",
	"Personal Coaching",
	"Beauty Services",
	"Aesthetic Medicine",
	"Personal Nutrition",

	// Gastronomy
	"Fine Dining",
	"Private Chefs",
	"Luxury Food",
	"Luxury Pastry",
	"Gourmet Delicacies",

	// Travel
	"Exclusive Destinations",
	"Luxury Hotels",
	"Unique Experiences",
	"Private Travel",
	"Travel Concierge",
}

// seedSpecialties inserts any missing catalogue entries. Idempotent.
func seedSpecialties(db *gorm.DB, repo repositories.SpecialtyRepository) error {
	for _, name := range specialtyNames {
		if err := repo.UpsertByName(db, name); err != nil {
			return err
		}
	}
	logger.Info("specialty catalogue seeded", "count", len(specialtyNames))
	return nil
}
