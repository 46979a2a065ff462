package models

// Expense holds the one-time cost fields shared by activities and notes.
type Expense struct {
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	EstimatedCost *float64 `json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost    *float64 `json:"actual_cost" validate:"omitempty,gte=0"`
	Included      bool     `json:"included"`
	Paid          bool     `json:"paid"`
}

func (e Expense) Estimated() float64 {
	if e.EstimatedCost == nil {
		return 0
	}
	return *e.EstimatedCost
}

func (e Expense) Actual() float64 {
	if e.ActualCost == nil {
		return e.Estimated()
	}
	return *e.ActualCost
}

type ExpensePatch struct {
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	Included      *bool    `json:"included"`
	Paid          *bool    `json:"paid"`
}

func (e Expense) Apply(patch ExpensePatch) Expense {
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.EstimatedCost != nil {
		v := *patch.EstimatedCost
		e.EstimatedCost = &v
	}
	if patch.ActualCost != nil {
		v := *patch.ActualCost
		e.ActualCost = &v
	}
	if patch.Included != nil {
		e.Included = *patch.Included
	}
	if patch.Paid != nil {
		e.Paid = *patch.Paid
	}
	return e
}

// Activity is a one-time cost at a Place, charged as "activities".
type Activity struct {
	ID      string `json:"id" validate:"required"`
	PlaceID string `json:"place_id" validate:"required"`
	TripID  string `json:"trip_id" validate:"required"`
	Expense
}

// PlaceNote is a one-time cost at a Place, charged as "miscellaneous".
type PlaceNote struct {
	ID      string `json:"id" validate:"required"`
	PlaceID string `json:"place_id" validate:"required"`
	TripID  string `json:"trip_id" validate:"required"`
	Expense
}

// CountryNote is a one-time cost for a Country (visa, insurance, ...).
type CountryNote struct {
	ID        string `json:"id" validate:"required"`
	CountryID string `json:"country_id" validate:"required"`
	TripID    string `json:"trip_id" validate:"required"`
	Expense
}

type RouteNote struct {
	ID          string `json:"id" validate:"required"`
	RouteID     string `json:"route_id" validate:"required"`
	TripID      string `json:"trip_id" validate:"required"`
	Description string `json:"description"`
}

type RouteNotePatch struct {
	Description *string `json:"description"`
}
