package models

type RouteType string

const (
	RouteFlying  RouteType = "flying"
	RouteDriving RouteType = "driving"
	RouteBus     RouteType = "bus"
	RouteTrain   RouteType = "train"
	RouteBoat    RouteType = "boat"
	RouteNone    RouteType = "none"
)

// IsLand reports whether the mode follows roads or rails and can be
// enriched with a directions lookup.
func (t RouteType) IsLand() bool {
	switch t {
	case RouteDriving, RouteBus, RouteTrain:
		return true
	default:
		return false
	}
}

// Route is a typed connection between two Places of a Trip.
// Nights counts nights spent in transit, e.g. on an overnight ferry.
type Route struct {
	ID            string    `json:"id" validate:"required"`
	SourceID      string    `json:"source" validate:"required"`
	TargetID      string    `json:"target" validate:"required,nefield=SourceID"`
	Type          RouteType `json:"type" validate:"omitempty,oneof=flying driving bus train boat none"`
	Distance      float64   `json:"distance" validate:"gte=0"`
	Duration      float64   `json:"duration" validate:"gte=0"`
	EstimatedCost *float64  `json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost    *float64  `json:"actual_cost" validate:"omitempty,gte=0"`
	Nights        int       `json:"nights" validate:"gte=0"`
	Path          string    `json:"route"`
	Paid          bool      `json:"paid"`
	TripID        string    `json:"trip_id" validate:"required"`
}

// Estimated returns the estimated cost, 0 when unset.
func (r Route) Estimated() float64 {
	if r.EstimatedCost == nil {
		return 0
	}
	return *r.EstimatedCost
}

// Actual returns the actual cost, falling back to the estimate when unset.
func (r Route) Actual() float64 {
	if r.ActualCost == nil {
		return r.Estimated()
	}
	return *r.ActualCost
}

type RoutePatch struct {
	Type          *RouteType `json:"type"`
	Distance      *float64   `json:"distance"`
	Duration      *float64   `json:"duration"`
	EstimatedCost *float64   `json:"estimated_cost"`
	ActualCost    *float64   `json:"actual_cost"`
	Nights        *int       `json:"nights"`
	Path          *string    `json:"route"`
	Paid          *bool      `json:"paid"`
}

func (r Route) Apply(patch RoutePatch) Route {
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	if patch.Distance != nil {
		r.Distance = *patch.Distance
	}
	if patch.Duration != nil {
		r.Duration = *patch.Duration
	}
	if patch.EstimatedCost != nil {
		v := *patch.EstimatedCost
		r.EstimatedCost = &v
	}
	if patch.ActualCost != nil {
		v := *patch.ActualCost
		r.ActualCost = &v
	}
	if patch.Nights != nil {
		r.Nights = *patch.Nights
	}
	if patch.Path != nil {
		r.Path = *patch.Path
	}
	if patch.Paid != nil {
		r.Paid = *patch.Paid
	}
	return r
}
