package browse

import (
	"sort"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/mmcloughlin/geohash"
)

// Geohash precision bounds for map clustering.
const (
	MinClusterPrecision     = 1
	MaxClusterPrecision     = 12
	DefaultClusterPrecision = 5
)

// Cluster groups listings that fall into the same geohash cell.
type Cluster struct {
	Geohash    string             `json:"geohash"`
	ListingIDs []int              `json:"listingIds"`
	Center     models.Coordinates `json:"center"`
	Count      int                `json:"count"`
}

// ClusterByGeohash buckets listings by the geohash of their coordinates at
// the given precision. Listings without coordinates are skipped. Clusters are
// ordered by geohash; member ids keep input order.
func ClusterByGeohash(listings []models.Listing, precision uint) []Cluster {
	if precision < MinClusterPrecision {
		precision = MinClusterPrecision
	}
	if precision > MaxClusterPrecision {
		precision = MaxClusterPrecision
	}

	index := make(map[string]int)
	clusters := make([]Cluster, 0)
	for _, l := range listings {
		if l.Coordinates == nil {
			continue
		}
		hash := geohash.EncodeWithPrecision(l.Coordinates.Lat, l.Coordinates.Lng, precision)

		i, ok := index[hash]
		if !ok {
			i = len(clusters)
			index[hash] = i
			clusters = append(clusters, Cluster{Geohash: hash})
		}
		c := &clusters[i]
		c.ListingIDs = append(c.ListingIDs, l.ID)
		c.Center.Lat += l.Coordinates.Lat
		c.Center.Lng += l.Coordinates.Lng
		c.Count++
	}

	for i := range clusters {
		n := float64(clusters[i].Count)
		clusters[i].Center.Lat /= n
		clusters[i].Center.Lng /= n
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Geohash < clusters[j].Geohash })
	return clusters
}
