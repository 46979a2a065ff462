package models

// Visit is an occurrence of a Place within one Plan.
type Visit struct {
	ID       string `json:"id" validate:"required"`
	PlaceID  string `json:"place_id" validate:"required"`
	PlanID   string `json:"plan_id" validate:"required"`
	Nights   int    `json:"nights" validate:"gte=0"`
	Included bool   `json:"included"`
}

type VisitPatch struct {
	Nights   *int  `json:"nights"`
	Included *bool `json:"included"`
}

func (v Visit) Apply(patch VisitPatch) Visit {
	if patch.Nights != nil {
		v.Nights = *patch.Nights
	}
	if patch.Included != nil {
		v.Included = *patch.Included
	}
	return v
}
