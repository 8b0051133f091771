package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ksg0322/travel-map/internal/interfaces"
	"github.com/ksg0322/travel-map/internal/models"
)

// Matrix estimation is only worth its API cost for small candidate sets
const (
	matrixMinCandidates = 2
	matrixMaxCandidates = 10
)

// candidate is one routable stop in a planning turn. Index 0 is reserved for
// the device's current position when it is available.
type candidate struct {
	Name      string
	Coord     models.LatLng
	IsCurrent bool
}

// PlannerResult pairs the narrative answer with the materialized route.
// RoutePaths is never nil; empty means this turn produced no route.
type PlannerResult struct {
	Response   string
	RoutePaths []models.RouteLeg
}

// Planner runs the two-phase trip planning pipeline: a machine-readable
// order-inference call followed by per-leg route materialization and a
// separate narrative call grounded in the computed legs.
type Planner struct {
	llm    interfaces.LLMService
	geo    interfaces.GeoService
	logger arbor.ILogger
}

// NewPlanner creates the trip planner agent
func NewPlanner(llm interfaces.LLMService, geo interfaces.GeoService, logger arbor.ILogger) *Planner {
	return &Planner{
		llm:    llm,
		geo:    geo,
		logger: logger,
	}
}

// Respond plans an itinerary over the saved places. Routing is skipped when
// fewer than two candidates resolve to coordinates; the narrative reply is
// produced either way. Only the narrative call's failure surfaces as an
// error.
func (p *Planner) Respond(ctx context.Context, message string, history []models.Message, language string, currentLocation *models.Location, savedPlaces []models.Place, contextBlock string) (*PlannerResult, error) {
	candidates := assembleCandidates(currentLocation, savedPlaces)

	var legs []models.RouteLeg
	if len(candidates) >= 2 {
		matrixText := p.describeMatrix(ctx, candidates, language)
		order := p.inferOrder(ctx, message, history, candidates, matrixText)
		if validateOrder(order, len(candidates)) {
			legs = p.materializeRoute(ctx, candidates, order, language)
		}
	} else {
		p.logger.Debug().
			Int("candidates", len(candidates)).
			Msg("Not enough routable candidates, skipping route planning")
	}

	narrative, err := p.generateNarrative(ctx, message, history, language, contextBlock, legs)
	if err != nil {
		return nil, err
	}

	if legs == nil {
		legs = []models.RouteLeg{}
	}
	return &PlannerResult{Response: narrative, RoutePaths: legs}, nil
}

// assembleCandidates builds the ordered candidate list: current location
// first when present, then every saved place with a finite coordinate pair
func assembleCandidates(currentLocation *models.Location, savedPlaces []models.Place) []candidate {
	candidates := make([]candidate, 0, len(savedPlaces)+1)

	if currentLocation.HasCoordinates() {
		name := currentLocation.Address
		if name == "" {
			name = "현재 위치"
		}
		candidates = append(candidates, candidate{
			Name:      name,
			Coord:     currentLocation.LatLng(),
			IsCurrent: true,
		})
	}

	for i := range savedPlaces {
		coord, ok := models.CoordinateOf(&savedPlaces[i])
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			Name:  savedPlaces[i].Name(),
			Coord: coord,
		})
	}

	return candidates
}

// describeMatrix fetches the pairwise driving matrix and renders it as prompt
// text. Any failure returns "" and planning proceeds without cost context.
func (p *Planner) describeMatrix(ctx context.Context, candidates []candidate, language string) string {
	if len(candidates) < matrixMinCandidates || len(candidates) > matrixMaxCandidates {
		return ""
	}

	points := make([]models.LatLng, len(candidates))
	for i, c := range candidates {
		points[i] = c.Coord
	}

	entries, err := p.geo.GetDistanceMatrix(ctx, points, points, interfaces.TravelModeDriving, language)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Distance matrix unavailable, planning without travel cost context")
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.OriginIndex == entry.DestinationIndex {
			continue
		}
		fmt.Fprintf(&b, "%d -> %d: %s, %s\n",
			entry.OriginIndex, entry.DestinationIndex, entry.DistanceText, entry.DurationText)
	}
	return b.String()
}

// inferOrder asks the model for a visiting order as a bare JSON index array.
// Returns nil when the call fails or no bracketed list can be extracted.
func (p *Planner) inferOrder(ctx context.Context, message string, history []models.Message, candidates []candidate, matrixText string) []int {
	var b strings.Builder
	b.WriteString("후보 장소 (인덱스: 이름, 좌표):\n")
	for i, c := range candidates {
		label := c.Name
		if c.IsCurrent {
			label += " (현재 위치)"
		}
		fmt.Fprintf(&b, "%d: %s (%.6f, %.6f)\n", i, label, c.Coord.Lat, c.Coord.Lng)
	}
	if matrixText != "" {
		b.WriteString("\n이동 거리/시간 (운전 기준):\n")
		b.WriteString(matrixText)
	}

	prompt := orderInferencePrompt + "\n\n" + b.String()

	completion, err := p.llm.CompleteChat(ctx, prompt, message, history)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Order inference call failed, emitting empty route")
		return nil
	}

	order := extractIndexList(completion)
	if order == nil {
		p.logger.Warn().Str("completion", completion).Msg("No index list in order inference completion")
	}
	return order
}

// validateOrder accepts an order only when it has at least two entries and
// every index is within candidate bounds. A rejected order is not retried.
func validateOrder(order []int, candidateCount int) bool {
	if len(order) < 2 {
		return false
	}
	for _, index := range order {
		if index < 0 || index >= candidateCount {
			return false
		}
	}
	return true
}

// materializeRoute fetches transit directions for each consecutive pair in a
// validated order. Legs are requested sequentially and a failed leg is
// skipped without aborting the rest, so partial routes are possible.
func (p *Planner) materializeRoute(ctx context.Context, candidates []candidate, order []int, language string) []models.RouteLeg {
	legs := make([]models.RouteLeg, 0, len(order)-1)

	for i := 0; i < len(order)-1; i++ {
		origin := candidates[order[i]]
		destination := candidates[order[i+1]]

		directions, err := p.geo.GetDirections(ctx, origin.Coord, destination.Coord, interfaces.TravelModeTransit, language)
		if err != nil || directions == nil {
			p.logger.Warn().
				Err(err).
				Str("origin", origin.Name).
				Str("destination", destination.Name).
				Msg("Leg directions unavailable, skipping leg")
			continue
		}

		legs = append(legs, models.RouteLeg{
			Polyline:        directions.Polyline,
			Origin:          origin.Coord,
			Destination:     destination.Coord,
			OriginName:      origin.Name,
			DestinationName: destination.Name,
			DistanceText:    directions.DistanceText,
			DurationText:    directions.DurationText,
		})
	}

	p.logger.Info().
		Int("stops", len(order)).
		Int("legs", len(legs)).
		Msg("Route materialized")
	return legs
}

// generateNarrative is the second, human-readable call. It is grounded in
// the actual computed legs rather than the model's own routing claims.
func (p *Planner) generateNarrative(ctx context.Context, message string, history []models.Message, language string, contextBlock string, legs []models.RouteLeg) (string, error) {
	prompt := plannerNarrativePrompt(language)
	if contextBlock != "" {
		prompt += "\n\n" + contextBlock
	}

	if len(legs) > 0 {
		var b strings.Builder
		b.WriteString("\n\n계산된 경로:\n")
		for i, leg := range legs {
			fmt.Fprintf(&b, "%d. %s -> %s: %s, %s\n",
				i+1, leg.OriginName, leg.DestinationName, leg.DistanceText, leg.DurationText)
		}
		prompt += b.String()
	}

	return p.llm.CompleteChat(ctx, prompt, message, history)
}
