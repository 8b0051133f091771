package models

import "math"

// LatLng represents a geographic coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a geographic bounding box
type Bounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// Location represents a device or map position. Address is filled in lazily
// by reverse geocoding when absent.
type Location struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy,omitempty"`
	Address  string  `json:"address,omitempty"`
}

// LatLng returns the coordinate pair of the location
func (l *Location) LatLng() LatLng {
	return LatLng{Lat: l.Lat, Lng: l.Lng}
}

// HasCoordinates reports whether the location carries a usable coordinate pair
func (l *Location) HasCoordinates() bool {
	if l == nil {
		return false
	}
	return isFinite(l.Lat) && isFinite(l.Lng)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
