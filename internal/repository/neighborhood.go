package repository

import (
	"hash/fnv"
	"math"
	"strconv"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

var (
	schoolNames = []string{"Lincoln", "Washington", "Roosevelt", "Jefferson", "Franklin", "Riverside", "Oak Hill", "Maple Grove"}
	schoolTypes = []string{"Elementary", "Middle", "High"}

	transitKinds = []struct {
		kind   string
		prefix string
	}{
		{"Bus", "Route "},
		{"Light Rail", "Line "},
		{"Subway", "Line "},
	}
	transitFrequencies = []string{"Every 5 min", "Every 10 min", "Every 15 min", "Every 30 min"}

	amenityPool = []models.Amenity{
		{Name: "Whole Foods Market", Category: "Grocery", Icon: "ShoppingCart"},
		{Name: "Central Park", Category: "Park", Icon: "Trees"},
		{Name: "City Fitness", Category: "Gym", Icon: "Dumbbell"},
		{Name: "Corner Coffee", Category: "Cafe", Icon: "Coffee"},
		{Name: "Community Hospital", Category: "Healthcare", Icon: "Heart"},
		{Name: "Public Library", Category: "Library", Icon: "Book"},
		{Name: "Farmers Market", Category: "Grocery", Icon: "Apple"},
		{Name: "Trailhead", Category: "Park", Icon: "Mountain"},
	}
)

// NeighborhoodFor derives neighborhood statistics for a listing. The result is
// deterministic per listing so repeated requests render the same data.
func NeighborhoodFor(l models.Listing) models.NeighborhoodStats {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.Itoa(l.ID) + "|" + l.City + "|" + l.ZipCode))
	seed := h.Sum64()

	next := func(n int) int {
		seed = seed*6364136223846793005 + 1442695040888963407
		return int((seed >> 33) % uint64(n))
	}
	rating := func() float64 {
		return 3.0 + float64(next(21))/10
	}
	distance := func(maxTenths int) float64 {
		return math.Round(float64(next(maxTenths)+1)) / 10
	}

	stats := models.NeighborhoodStats{
		Schools:   make([]models.School, 0, len(schoolTypes)),
		Transit:   make([]models.TransitOption, 0, 2),
		Amenities: make([]models.Amenity, 0, 4),
	}

	for _, kind := range schoolTypes {
		stats.Schools = append(stats.Schools, models.School{
			Name:     schoolNames[next(len(schoolNames))] + " " + kind + " School",
			Type:     kind,
			Rating:   rating(),
			Distance: distance(30),
		})
	}

	for i := 0; i < 2; i++ {
		t := transitKinds[next(len(transitKinds))]
		stats.Transit = append(stats.Transit, models.TransitOption{
			Type:      t.kind,
			Route:     t.prefix + strconv.Itoa(next(99)+1),
			Frequency: transitFrequencies[next(len(transitFrequencies))],
			WalkTime:  next(15) + 2,
		})
	}

	start := next(len(amenityPool))
	for i := 0; i < 4; i++ {
		a := amenityPool[(start+i)%len(amenityPool)]
		a.Rating = rating()
		a.Distance = distance(20)
		stats.Amenities = append(stats.Amenities, a)
	}

	return stats
}
