package domain

// Stats is the derived read-only summary computed over the full record set.
// All maps are recomputed fresh on every aggregate call; an empty store
// yields empty (non-nil) maps and zero counts.
type Stats struct {
	// AverageRatingByCountry maps country -> arithmetic mean of rating
	// over all of that country's records.
	AverageRatingByCountry map[string]float64 `json:"average_rating_by_country"`

	// TopDestinationsByMonth maps "YYYY-MM" -> title of the record holding
	// the maximum rating within that calendar month. Among equal max
	// ratings the record with the lowest id wins.
	TopDestinationsByMonth map[string]string `json:"top_destinations_by_month"`

	// CategoryDistribution maps category -> number of records in it.
	CategoryDistribution map[string]int `json:"category_distribution"`

	TotalCountriesVisited int `json:"total_countries_visited"`
	TotalCitiesVisited    int `json:"total_cities_visited"`
}
