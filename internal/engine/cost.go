package engine

import "travelmap/internal/domain/models"

// Category shares applied to a single amount.
var (
	boatShares = models.CostBreakdown{Transport: 0.25, Accommodation: 0.25, Food: 0.25, Activities: 0.25}
	// overnight bus, train or flight: bed and meals come with the ticket
	overnightShares = models.CostBreakdown{Transport: 0.4, Accommodation: 0.4, Food: 0.2}
	rentalWithBed   = models.CostBreakdown{Transport: 0.5, Accommodation: 0.5}
	transportOnly   = models.CostBreakdown{Transport: 1}
)

// CostLine is one row of a cost summary.
type CostLine struct {
	ID   string                `json:"id"`
	Name string                `json:"name"`
	Cost models.CostComparison `json:"cost"`
}

// Summary is the full cost report of a View.
type Summary struct {
	Version   uint64                `json:"version"`
	Total     models.CostComparison `json:"total"`
	Countries []CostLine            `json:"countries"`
	Routes    []CostLine            `json:"routes"`
	Visits    []CostLine            `json:"visits"`
}

func split(shares models.CostBreakdown, estimated, actual float64) models.CostComparison {
	return models.CostComparison{
		Estimated: shares.Scale(estimated),
		Actual:    shares.Scale(actual),
	}
}

// VisitCost is nights times the Place's nightly food and miscellaneous rate,
// plus accommodation unless the active rental includes a bed. The first
// itinerary Visit of a Place also carries its included activities and notes.
func (v *View) VisitCost(id string) models.CostComparison {
	visit, ok := v.state.Plan.Visits.Get(id)
	if !ok || !v.VisitInItinerary(id) {
		return models.EmptyComparison()
	}
	place, _ := v.state.Trip.Places.Get(visit.PlaceID)
	nights := float64(visit.Nights)
	nightly := models.CostBreakdown{
		Food:          nights * place.FoodCost,
		Miscellaneous: nights * place.MiscellaneousCost,
	}
	if rental, ok := v.VisitRental(id); !ok || !rental.IncludesAccommodation {
		nightly.Accommodation = nights * place.AccommodationCost
	}
	cost := models.CostComparison{Estimated: nightly, Actual: nightly}
	if v.firstVisit[place.ID] == id {
		cost = cost.Add(v.placeExpenses(place.ID))
	}
	return cost
}

func (v *View) placeExpenses(placeID string) models.CostComparison {
	var cost models.CostComparison
	for _, a := range v.state.Trip.PlaceActivities(placeID) {
		if a.Included {
			cost.Estimated.Activities += a.Estimated()
			cost.Actual.Activities += a.Actual()
		}
	}
	for _, n := range v.state.Trip.PlaceNotesOf(placeID) {
		if n.Included {
			cost.Estimated.Miscellaneous += n.Estimated()
			cost.Actual.Miscellaneous += n.Actual()
		}
	}
	return cost
}

// TraverseCost prices one itinerary leg. Under a rental the daily rate of
// the rental's own Route applies. Otherwise the Route cost is split by mode
// and overnight nights, and driving without a rental costs nothing.
func (v *View) TraverseCost(id string) models.CostComparison {
	leg, ok := v.state.Plan.Traverses.Get(id)
	if !ok || !v.TraverseInItinerary(id) {
		return models.EmptyComparison()
	}
	route, _ := v.state.Trip.Routes.Get(leg.RouteID)
	if rental, ok := v.TraverseRental(id); ok {
		return v.rentalCost(leg, route, rental)
	}
	if route.Type == models.RouteDriving {
		return models.EmptyComparison()
	}
	shares := transportOnly
	if route.Nights > 0 {
		shares = overnightShares
		if route.Type == models.RouteBoat {
			shares = boatShares
		}
	}
	actual := route.Actual()
	if leg.Cost > 0 {
		actual = leg.Cost
	}
	return split(shares, route.Estimated(), actual)
}

// rentalCost charges rental days for a leg: nights spent at the departing
// Visit plus nights on the road, and one pick-up day on the leg that starts
// the rental. BookedDays overrides the computed count.
func (v *View) rentalCost(leg models.Traverse, route models.Route, rental models.Traverse) models.CostComparison {
	rate, _ := v.state.Trip.Routes.Get(rental.RouteID)
	source, _ := v.state.Plan.Visits.Get(leg.SourceVisitID)
	days := source.Nights + route.Nights
	if leg.ID == rental.ID {
		days++
	}
	if leg.BookedDays > 0 {
		days = leg.BookedDays
	}
	shares := transportOnly
	if rental.IncludesAccommodation {
		shares = rentalWithBed
	}
	estimated := rate.Estimated() * float64(days)
	actual := rate.Actual() * float64(days)
	if leg.Cost > 0 {
		actual = leg.Cost
	}
	return split(shares, estimated, actual)
}

// RouteCost sums the costs of the Route's traverses in the Plan. Zero when
// the Route is not traveled.
func (v *View) RouteCost(id string) models.CostComparison {
	if !v.RouteInItinerary(id) {
		return models.EmptyComparison()
	}
	total := models.EmptyComparison()
	for _, t := range v.state.Plan.RouteTraverses(id) {
		total = total.Add(v.TraverseCost(t.ID))
	}
	return total
}

// PlaceCost sums the costs of the Place's Visits in the Plan.
func (v *View) PlaceCost(id string) models.CostComparison {
	total := models.EmptyComparison()
	for _, visit := range v.state.Plan.PlaceVisits(id) {
		total = total.Add(v.VisitCost(visit.ID))
	}
	return total
}

// CountryCost is the country's included notes plus its Places plus Routes
// lying entirely inside it. Zero when none of its Places is traveled.
func (v *View) CountryCost(id string) models.CostComparison {
	if !v.CountryInItinerary(id) {
		return models.EmptyComparison()
	}
	trip := v.state.Trip
	var total models.CostComparison
	for _, n := range trip.CountryNotesOf(id) {
		if n.Included {
			total.Estimated.Miscellaneous += n.Estimated()
			total.Actual.Miscellaneous += n.Actual()
		}
	}
	for _, p := range trip.CountryPlaces(id) {
		total = total.Add(v.PlaceCost(p.ID))
	}
	for _, r := range trip.CountryRoutes(id) {
		total = total.Add(v.RouteCost(r.ID))
	}
	return total
}

// PlanCost is every country plus every cross-country Route. Places without a
// country are grouped under the empty country id.
func (v *View) PlanCost() models.CostComparison {
	trip := v.state.Trip
	total := models.EmptyComparison()
	for _, id := range trip.CountryIDs() {
		total = total.Add(v.CountryCost(id))
	}
	for _, r := range trip.Routes.Values() {
		if trip.IsCrossCountry(r) {
			total = total.Add(v.RouteCost(r.ID))
		}
	}
	return total
}

// Summary reports the plan total with per-country, per-route and per-visit
// lines. Only traveled entities get a line.
func (v *View) Summary() Summary {
	trip := v.state.Trip
	s := Summary{
		Version:   v.state.Version,
		Total:     v.PlanCost(),
		Countries: []CostLine{},
		Routes:    []CostLine{},
		Visits:    []CostLine{},
	}
	for _, id := range trip.CountryIDs() {
		if !v.CountryInItinerary(id) {
			continue
		}
		c, _ := trip.Countries.Get(id)
		s.Countries = append(s.Countries, CostLine{ID: id, Name: c.Name, Cost: v.CountryCost(id)})
	}
	for _, r := range trip.Routes.Values() {
		if !v.RouteInItinerary(r.ID) {
			continue
		}
		s.Routes = append(s.Routes, CostLine{ID: r.ID, Name: v.routeName(r), Cost: v.RouteCost(r.ID)})
	}
	for _, visit := range v.it.visits {
		p, _ := trip.Places.Get(visit.PlaceID)
		s.Visits = append(s.Visits, CostLine{ID: visit.ID, Name: p.Name, Cost: v.VisitCost(visit.ID)})
	}
	return s
}

func (v *View) routeName(r models.Route) string {
	src, _ := v.state.Trip.Places.Get(r.SourceID)
	dst, _ := v.state.Trip.Places.Get(r.TargetID)
	return src.Name + " - " + dst.Name
}
