package engine

import "travelmap/internal/domain/models"

// maxNonDrivingGap is how many consecutive non-driving legs a rental window
// may span before the end-point candidates stop.
const maxNonDrivingGap = 3

// validRentUntil reports whether the leg is a driving leg whose rent_until
// names an itinerary Visit at or after the leg's own target. Anything else is
// malformed and treated as "no rental".
func (it itinerary) validRentUntil(leg models.Traverse, routes Table[models.Route]) bool {
	end := leg.RentUntilID()
	if end == "" {
		return false
	}
	if r, ok := routes.Get(leg.RouteID); !ok || r.Type != models.RouteDriving {
		return false
	}
	endPos, ok := it.visitPos[end]
	if !ok {
		return false
	}
	targetPos, ok := it.visitPos[leg.TargetVisitID]
	return ok && endPos >= targetPos
}

// resolveRentals maps itinerary leg id to the id of the leg that started the
// rental active on it. A newer rental start on a later leg supersedes the
// current one. A rental ends after the leg arriving at its rent_until.
func resolveRentals(it itinerary, routes Table[models.Route]) map[string]string {
	out := map[string]string{}
	var current *models.Traverse
	for i := range it.legs {
		leg := it.legs[i]
		if it.validRentUntil(leg, routes) {
			current = &it.legs[i]
		}
		if current == nil {
			continue
		}
		out[leg.ID] = current.ID
		if leg.TargetVisitID == current.RentUntilID() {
			current = nil
		}
	}
	return out
}

// TraverseRental returns the leg that started the rental active on the
// Traverse, if any.
func (v *View) TraverseRental(traverseID string) (models.Traverse, bool) {
	src, ok := v.rentals[traverseID]
	if !ok {
		return models.Traverse{}, false
	}
	return v.state.Plan.Traverses.Get(src)
}

// VisitRental returns the rental active while staying at the Visit, which is
// the rental of the leg departing it. The last itinerary Visit has none.
func (v *View) VisitRental(visitID string) (models.Traverse, bool) {
	pos, ok := v.it.visitPos[visitID]
	if !ok || pos >= len(v.it.legs) {
		return models.Traverse{}, false
	}
	return v.TraverseRental(v.it.legs[pos].ID)
}

// RentUntilOptions lists the Visits a rental starting on the Traverse could
// end at: targets of driving legs from this leg onward, stopping once
// maxNonDrivingGap non-driving legs occur in a row. Empty when the Traverse
// is not a driving itinerary leg.
func (v *View) RentUntilOptions(traverseID string) []models.Visit {
	pos, ok := v.it.legPos[traverseID]
	if !ok {
		return nil
	}
	routes := v.state.Trip.Routes
	if r, _ := routes.Get(v.it.legs[pos].RouteID); r.Type != models.RouteDriving {
		return nil
	}
	var out []models.Visit
	gap := 0
	for i := pos; i < len(v.it.legs); i++ {
		r, _ := routes.Get(v.it.legs[i].RouteID)
		if r.Type != models.RouteDriving {
			gap++
			if gap >= maxNonDrivingGap {
				break
			}
			continue
		}
		gap = 0
		out = append(out, v.it.visits[i+1])
	}
	return out
}
