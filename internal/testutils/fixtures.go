// Package testutils builds small in-memory stores shaped like the Berlin dataset.
package testutils

import "dashboard/internal/engine"

// Listings has two 2-guest listings in Mitte and one 4-guest listing in Pankow.
func Listings() *engine.Table {
	return engine.NewTableFromRows(engine.TableListings, "memory",
		[]string{"longitude", "latitude", "accommodates", "price", "neighbourhood_group_cleansed",
			"host_is_superhost", "beds", "room_type", "availability_365", "review_scores_rating"},
		[][]string{
			{"13.40", "52.52", "2", "$80.00", "Mitte", "t", "1", "Private room", "0", "95"},
			{"13.41", "52.50", "4", "$1,234.50", "Pankow", "f", "2", "Entire home/apt", "120", "80"},
			{"13.39", "52.51", "2", "$45.00", "Mitte", "f", "1", "Private room", "0", "90"},
		})
}

// Trend is a price trend table for field with the given (date, price, value) rows.
func Trend(name, field string, rows ...[3]string) *engine.Table {
	recs := make([][]string, len(rows))
	for i, r := range rows {
		recs[i] = []string{r[0], r[1], r[2]}
	}
	return engine.NewTableFromRows(name, "memory", []string{"date", "price", field}, recs)
}

// Availability has four listings; the last one is priced above the scatter cap.
func Availability() *engine.Table {
	return engine.NewTableFromRows(engine.TableAvailability90, "memory",
		[]string{"availability_90", "price", "review_scores_rating", "host_is_superhost",
			"neighbourhood_group_cleansed", "host_acceptance_rate", "host_response_time",
			"host_identity_verified", "number_of_reviews", "instant_bookable"},
		[][]string{
			{"10", "50", "95", "t", "Mitte", "100", "within an hour", "t", "12", "f"},
			{"45", "80", "88", "f", "Pankow", "75", "within a day", "t", "3", "t"},
			{"80", "150", "70", "f", "Mitte", "50", "NA", "f", "40", "t"},
			{"60", "650", "92", "t", "Pankow", "90", "within an hour", "t", "7", "f"},
		})
}

// Terms is a small term-frequency map.
func Terms() engine.TermFrequencies {
	return engine.TermFrequencies{"clean": 5, "quiet": 2, "central": 3}
}

// Store returns a store holding every table and term map the dashboard reads.
func Store() *engine.Store {
	tables := []*engine.Table{
		Listings(),
		Availability(),
		Trend(engine.TablePriceSuperhost, "host_is_superhost",
			[3]string{"2020-01-01", "50", "t"}, [3]string{"2020-01-02", "60", "f"}, [3]string{"2020-01-02", "55", "t"}),
		Trend(engine.TablePriceBeds, "beds",
			[3]string{"2020-01-01", "50", "1"}, [3]string{"2020-01-01", "90", "2"}),
		Trend(engine.TablePriceNeighborhood, "neighbourhood_group_cleansed",
			[3]string{"2020-01-01", "70", "Mitte"}, [3]string{"2020-01-01", "60", "Pankow"}),
		Trend(engine.TablePriceRoomType, "room_type",
			[3]string{"2020-01-01", "40", "Private room"}, [3]string{"2020-01-01", "90", "Entire home/apt"}),
		Trend(engine.TablePriceAvailability, "availability_365",
			[3]string{"2020-01-01", "40", "0"}, [3]string{"2020-01-01", "90", "120"}),
		Trend(engine.TablePriceReview, "review_scores_rating",
			[3]string{"2020-01-01", "40", "80"}, [3]string{"2020-01-01", "90", "95"}),
	}
	terms := map[string]engine.TermFrequencies{}
	for _, name := range []string{engine.TermsReviewAbove85, engine.TermsReviewBelow85,
		engine.TermsAvailabilityAbove60, engine.TermsAvailabilityBelow20,
		engine.TermsPriceAbove100, engine.TermsPriceBelow80} {
		terms[name] = Terms()
	}
	return engine.NewStore(tables, terms)
}
