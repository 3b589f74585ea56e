package registry

import "dashboard/internal/engine"

// Explorer names.
const (
	ExplorerPrice        = "price"
	ExplorerAvailability = "availability"
	ExplorerComments     = "comments"
)

// Choices offered by each selectbox, in display order.
var (
	PriceChoices = []string{
		"Superhost", "Neighborhood", "Number of Beds", "Roomtype",
		"Room with Availability in 365 Days", "Review Score",
	}
	AvailabilityChoices = []string{
		"Superhost", "Neighborhood", "Host Acceptance Rate", "Host Response Time",
		"Host Identity Verified", "Number of Reviews", "Instant Bookable", "Price", "Review Score",
	}
	CommentChoices = []string{"Review Score", "Availability in 90 Days", "Price"}
)

// Price returns the registry of the price explorer. The distribution view counts
// listings, not trend rows.
func Price() *Registry {
	d := func(label, table, field, display string) Descriptor {
		return Descriptor{
			Label:        label,
			Dataset:      table,
			Field:        field,
			Kind:         mustKind("N"),
			DisplayName:  display,
			Distribution: engine.TableListings,
		}
	}
	return MustNew(ExplorerPrice,
		d("Superhost", engine.TablePriceSuperhost, "host_is_superhost", "Superhost"),
		d("Neighborhood", engine.TablePriceNeighborhood, "neighbourhood_group_cleansed", "Neighborhood"),
		d("Number of Beds", engine.TablePriceBeds, "beds", "Number of Beds"),
		d("Roomtype", engine.TablePriceRoomType, "room_type", "Roomtype"),
		d("Room with Availability in 365 Days", engine.TablePriceAvailability, "availability_365", "Availability"),
		d("Review Score", engine.TablePriceReview, "review_scores_rating", "Review Scores"),
	)
}

// Availability returns the registry of the availability explorer.
func Availability() *Registry {
	d := func(label, field, marker, display string) Descriptor {
		return Descriptor{
			Label:       label,
			Dataset:     engine.TableAvailability90,
			Field:       field,
			Kind:        mustKind(marker),
			DisplayName: display,
		}
	}
	responseTime := d("Host Response Time", "host_response_time", "N", "Host Response Time")
	responseTime.DropMissing = true
	return MustNew(ExplorerAvailability,
		d("Superhost", "host_is_superhost", "N", "Superhost"),
		d("Neighborhood", "neighbourhood_group_cleansed", "N", "Neighborhood"),
		d("Host Acceptance Rate", "host_acceptance_rate", "Q", "Host Acceptance Rate"),
		responseTime,
		d("Host Identity Verified", "host_identity_verified", "N", "Host Identity Verified"),
		d("Number of Reviews", "number_of_reviews", "Q", "Number of Reviews"),
		d("Instant Bookable", "instant_bookable", "N", "Instant Bookable"),
		d("Price", "price", "Q", "Price"),
		d("Review Score", "review_scores_rating", "Q", "Review Score"),
	)
}

// mustKind parses a kind marker of the built-in registries.
func mustKind(marker string) Kind {
	k, err := ParseKind(marker)
	if err != nil {
		panic(err)
	}
	return k
}

// Comments returns the registry of the comment explorer.
func Comments() *Registry {
	d := func(label string, high, low TermGroup) Descriptor {
		return Descriptor{Label: label, DisplayName: label, High: high, Low: low}
	}
	return MustNew(ExplorerComments,
		d("Review Score",
			TermGroup{engine.TermsReviewAbove85, "Airbnb with Review >= 85"},
			TermGroup{engine.TermsReviewBelow85, "Airbnb with Review < 85"}),
		d("Availability in 90 Days",
			TermGroup{engine.TermsAvailabilityAbove60, "Airbnb with Availability >= 60"},
			TermGroup{engine.TermsAvailabilityBelow20, "Airbnb with Availability <= 20"}),
		d("Price",
			TermGroup{engine.TermsPriceAbove100, "Airbnb with Price >= 100"},
			TermGroup{engine.TermsPriceBelow80, "Airbnb with Price <= 80"}),
	)
}
