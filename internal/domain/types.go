package domain

// PlanKey identifies one active (trip, plan) pair.
type PlanKey struct {
	TripID string `json:"tripId"`
	PlanID string `json:"planId"`
}

func (k PlanKey) String() string {
	return k.TripID + "/" + k.PlanID
}
