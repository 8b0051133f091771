package agents

import (
	"fmt"
	"strings"

	"github.com/ksg0322/travel-map/internal/models"
)

// ContextInput carries the session state the context block is built from
type ContextInput struct {
	CurrentLocation *models.Location
	MapCenter       *models.Location
	SavedPlaces     []models.Place
	SearchResults   []models.Place
	RadiusMeters    int
	MinRating       float64
}

// BuildContext assembles the natural-language context block injected into
// agent prompts. The planner scope deliberately excludes live search results;
// it reasons only over saved places and the actual device position so
// incidental map-viewport results never leak into an itinerary. Returns ""
// when no contextual data exists at all.
func BuildContext(input ContextInput, agentType models.AgentType) string {
	var b strings.Builder

	if input.CurrentLocation.HasCoordinates() {
		b.WriteString("현재 위치: ")
		if input.CurrentLocation.Address != "" {
			b.WriteString(input.CurrentLocation.Address)
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(%.6f, %.6f)\n", input.CurrentLocation.Lat, input.CurrentLocation.Lng)
	}

	if input.MapCenter.HasCoordinates() {
		b.WriteString("지도 중심: ")
		if input.MapCenter.Address != "" {
			b.WriteString(input.MapCenter.Address)
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "(%.6f, %.6f)\n", input.MapCenter.Lat, input.MapCenter.Lng)
	}

	if len(input.SavedPlaces) > 0 {
		b.WriteString("저장된 장소:\n")
		writePlaceList(&b, input.SavedPlaces)
	}

	if agentType != models.AgentPlanner && len(input.SearchResults) > 0 {
		b.WriteString("현재 검색 결과:\n")
		writePlaceList(&b, input.SearchResults)
	}

	if b.Len() == 0 {
		return ""
	}

	fmt.Fprintf(&b, "검색 설정: 반경 %.1fkm, 최소 평점 %.1f\n", float64(input.RadiusMeters)/1000, input.MinRating)
	return b.String()
}

// writePlaceList formats places as a numbered list with the attributes agents
// are allowed to surface
func writePlaceList(b *strings.Builder, places []models.Place) {
	for i, place := range places {
		fmt.Fprintf(b, "%d. %s", i+1, place.Name())
		if place.Type != "" {
			fmt.Fprintf(b, " [%s]", place.Type)
		}
		if place.Rating > 0 {
			fmt.Fprintf(b, " 평점 %.1f", place.Rating)
			if place.UserRatingCount > 0 {
				fmt.Fprintf(b, " (리뷰 %d개)", place.UserRatingCount)
			}
		}
		if place.FormattedAddress != "" {
			fmt.Fprintf(b, " - %s", place.FormattedAddress)
		}
		b.WriteString("\n")
	}
}
