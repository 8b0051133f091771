package models

// RouteLeg is one point-to-point directions segment between two consecutive
// stops in a visiting order. An ordered slice of legs forms the full
// multi-stop itinerary drawn on the map overlay.
type RouteLeg struct {
	Polyline        string `json:"polyline"`
	Origin          LatLng `json:"origin"`
	Destination     LatLng `json:"destination"`
	OriginName      string `json:"originName"`
	DestinationName string `json:"destinationName"`
	DistanceText    string `json:"distanceText"`
	DurationText    string `json:"durationText"`
}
