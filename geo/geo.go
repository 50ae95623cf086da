package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

//*******************************************
// coordinates
//*******************************************

// Coord is a lon/lat pair (WGS84).
type Coord = orb.Point

func MakeCoord(lon, lat float64) Coord {
	return Coord{lon, lat}
}

// Returns the haversine distance between two coordinates in meters.
func Dist(from, to Coord) float64 {
	return orbgeo.Distance(from, to)
}

// Returns the bounding box spanned by a coordinate and a radius in meters.
func BoundingBox(center Coord, radius float64) orb.Bound {
	return orbgeo.NewBoundAroundPoint(center, radius)
}
