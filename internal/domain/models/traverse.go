package models

// Traverse is the directed edge a Plan uses to connect two Visits through a
// Route. Lower Priority is preferred. RentUntil names the Visit at which a
// rental started by this Traverse ends.
type Traverse struct {
	ID                    string  `json:"id" validate:"required"`
	SourceVisitID         string  `json:"source_visit_id" validate:"required"`
	TargetVisitID         string  `json:"target_visit_id" validate:"required,nefield=SourceVisitID"`
	RouteID               string  `json:"route_id" validate:"required"`
	PlanID                string  `json:"plan_id" validate:"required"`
	Priority              float64 `json:"priority"`
	RentUntil             *string `json:"rent_until"`
	IncludesAccommodation bool    `json:"includes_accommodation"`
	Cost                  float64 `json:"cost" validate:"gte=0"`
	BookedDays            int     `json:"booked_days" validate:"gte=0"`
}

// RentUntilID returns the rental end Visit id or "" when unset.
func (t Traverse) RentUntilID() string {
	if t.RentUntil == nil {
		return ""
	}
	return *t.RentUntil
}

type TraversePatch struct {
	Priority              *float64 `json:"priority"`
	RentUntil             *string  `json:"rent_until"`
	IncludesAccommodation *bool    `json:"includes_accommodation"`
	Cost                  *float64 `json:"cost"`
	BookedDays            *int     `json:"booked_days"`
}

// Apply merges the patch. An empty RentUntil clears the rental end.
func (t Traverse) Apply(patch TraversePatch) Traverse {
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.RentUntil != nil {
		if *patch.RentUntil == "" {
			t.RentUntil = nil
		} else {
			v := *patch.RentUntil
			t.RentUntil = &v
		}
	}
	if patch.IncludesAccommodation != nil {
		t.IncludesAccommodation = *patch.IncludesAccommodation
	}
	if patch.Cost != nil {
		t.Cost = *patch.Cost
	}
	if patch.BookedDays != nil {
		t.BookedDays = *patch.BookedDays
	}
	return t
}
