package models

// Place is a point of interest in a Trip. Costs are per-night estimates.
type Place struct {
	ID                string  `json:"id" validate:"required"`
	Name              string  `json:"name"`
	Lat               float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng               float64 `json:"lng" validate:"gte=-180,lte=180"`
	CountryID         string  `json:"country_id"`
	TripID            string  `json:"trip_id" validate:"required"`
	AccommodationCost float64 `json:"accommodation_cost" validate:"gte=0"`
	FoodCost          float64 `json:"food_cost" validate:"gte=0"`
	MiscellaneousCost float64 `json:"miscellaneous_cost" validate:"gte=0"`
}

// NightlyCost is the per-night sum of the three cost fields.
func (p Place) NightlyCost() float64 {
	return p.AccommodationCost + p.FoodCost + p.MiscellaneousCost
}

type PlacePatch struct {
	Name              *string  `json:"name"`
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	CountryID         *string  `json:"country_id"`
	AccommodationCost *float64 `json:"accommodation_cost"`
	FoodCost          *float64 `json:"food_cost"`
	MiscellaneousCost *float64 `json:"miscellaneous_cost"`
}

func (p Place) Apply(patch PlacePatch) Place {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Lat != nil {
		p.Lat = *patch.Lat
	}
	if patch.Lng != nil {
		p.Lng = *patch.Lng
	}
	if patch.CountryID != nil {
		p.CountryID = *patch.CountryID
	}
	if patch.AccommodationCost != nil {
		p.AccommodationCost = *patch.AccommodationCost
	}
	if patch.FoodCost != nil {
		p.FoodCost = *patch.FoodCost
	}
	if patch.MiscellaneousCost != nil {
		p.MiscellaneousCost = *patch.MiscellaneousCost
	}
	return p
}
