package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"travelmap/internal/domain/models"
)

// View is the derived read side of a State. It is computed once and shared;
// building a new View is the only way to see a newer State.
type View struct {
	state   State
	it      itinerary
	rentals map[string]string
	// first itinerary Visit per Place, which carries the Place's one-time expenses
	firstVisit map[string]string

	fpOnce      sync.Once
	fingerprint string
}

// Resolve validates the State and derives its itinerary and rental windows.
func Resolve(s State) (*View, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	it := walkItinerary(s.Plan)
	first := map[string]string{}
	for _, visit := range it.visits {
		if _, ok := first[visit.PlaceID]; !ok {
			first[visit.PlaceID] = visit.ID
		}
	}
	return &View{
		state:      s,
		it:         it,
		rentals:    resolveRentals(it, s.Trip.Routes),
		firstVisit: first,
	}, nil
}

func (v *View) State() State {
	return v.state
}

func (v *View) Version() uint64 {
	return v.state.Version
}

// Fingerprint is a digest of the State's rows. Equal content gives an equal
// fingerprint across reloads, unlike Version which restarts at 1 on every
// load.
func (v *View) Fingerprint() string {
	v.fpOnce.Do(func() {
		raw, err := json.Marshal(v.state.Snapshot())
		if err != nil {
			return
		}
		sum := sha256.Sum256(raw)
		v.fingerprint = hex.EncodeToString(sum[:16])
	})
	return v.fingerprint
}

// Itinerary returns the traveled Visits in order. Empty when nothing is
// included.
func (v *View) Itinerary() []models.Visit {
	out := make([]models.Visit, len(v.it.visits))
	copy(out, v.it.visits)
	return out
}

// Legs returns the Traverses connecting consecutive itinerary Visits.
func (v *View) Legs() []models.Traverse {
	out := make([]models.Traverse, len(v.it.legs))
	copy(out, v.it.legs)
	return out
}

func (v *View) VisitInItinerary(id string) bool {
	return v.it.hasVisit(id)
}

func (v *View) TraverseInItinerary(id string) bool {
	return v.it.hasLeg(id)
}

func (v *View) RouteInItinerary(id string) bool {
	for _, leg := range v.it.legs {
		if leg.RouteID == id {
			return true
		}
	}
	return false
}

func (v *View) PlaceInItinerary(id string) bool {
	_, ok := v.firstVisit[id]
	return ok
}

// CountryInItinerary reports whether any Place of the country is traveled.
func (v *View) CountryInItinerary(id string) bool {
	for _, p := range v.state.Trip.CountryPlaces(id) {
		if v.PlaceInItinerary(p.ID) {
			return true
		}
	}
	return false
}

// VisitPosition returns the index of the Visit in the itinerary.
func (v *View) VisitPosition(id string) (int, bool) {
	pos, ok := v.it.visitPos[id]
	return pos, ok
}
