package engine

import (
	"cmp"
	"slices"

	"travelmap/internal/domain/models"
)

// Plan owns the Visits and Traverses of one plan record.
type Plan struct {
	Record    models.Plan
	Visits    Table[models.Visit]
	Traverses Table[models.Traverse]
}

func newPlan(s models.Snapshot) Plan {
	return Plan{
		Record:    s.Plan,
		Visits:    NewTable(s.Visits, func(v models.Visit) string { return v.ID }),
		Traverses: NewTable(s.Traverses, func(t models.Traverse) string { return t.ID }),
	}
}

// byPriority orders traverses by priority, then id for a stable tie-break.
func byPriority(a, b models.Traverse) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Outgoing returns traverses leaving the visit, most preferred first.
func (p Plan) Outgoing(visitID string) []models.Traverse {
	out := p.Traverses.Filter(func(t models.Traverse) bool { return t.SourceVisitID == visitID })
	slices.SortFunc(out, byPriority)
	return out
}

// Ingoing returns traverses arriving at the visit, most preferred first.
func (p Plan) Ingoing(visitID string) []models.Traverse {
	out := p.Traverses.Filter(func(t models.Traverse) bool { return t.TargetVisitID == visitID })
	slices.SortFunc(out, byPriority)
	return out
}

// Touching returns traverses with the visit as source or target.
func (p Plan) Touching(visitID string) []models.Traverse {
	return p.Traverses.Filter(func(t models.Traverse) bool {
		return t.SourceVisitID == visitID || t.TargetVisitID == visitID
	})
}

func (p Plan) RouteTraverses(routeID string) []models.Traverse {
	return p.Traverses.Filter(func(t models.Traverse) bool { return t.RouteID == routeID })
}

func (p Plan) PlaceVisits(placeID string) []models.Visit {
	return p.Visits.Filter(func(v models.Visit) bool { return v.PlaceID == placeID })
}
