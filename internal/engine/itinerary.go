package engine

import "travelmap/internal/domain/models"

// itinerary is the walked path: visits[i] -> legs[i] -> visits[i+1].
type itinerary struct {
	visits   []models.Visit
	legs     []models.Traverse
	visitPos map[string]int
	legPos   map[string]int
}

func (it itinerary) hasVisit(id string) bool {
	_, ok := it.visitPos[id]
	return ok
}

func (it itinerary) hasLeg(id string) bool {
	_, ok := it.legPos[id]
	return ok
}

// startVisit picks the walk origin. An explicit plan start wins when it names
// an included Visit. Otherwise the lowest-id included Visit with no ingoing
// Traverse from another included Visit, and failing that the lowest-id
// included Visit (the plan is a cycle).
func startVisit(p Plan) (models.Visit, bool) {
	if id := p.Record.StartVisitID; id != "" {
		if v, ok := p.Visits.Get(id); ok && v.Included {
			return v, true
		}
	}
	included := p.Visits.Filter(func(v models.Visit) bool { return v.Included })
	if len(included) == 0 {
		return models.Visit{}, false
	}
	for _, v := range included {
		root := true
		for _, t := range p.Ingoing(v.ID) {
			if src, ok := p.Visits.Get(t.SourceVisitID); ok && src.Included && src.ID != v.ID {
				root = false
				break
			}
		}
		if root {
			return v, true
		}
	}
	return included[0], true
}

// walkItinerary follows, from the start, the highest-priority outgoing
// Traverse whose target is included and not yet visited. The seen set makes
// the walk terminate on cyclic graphs.
func walkItinerary(p Plan) itinerary {
	it := itinerary{visitPos: map[string]int{}, legPos: map[string]int{}}
	cur, ok := startVisit(p)
	if !ok {
		return it
	}
	it.visitPos[cur.ID] = 0
	it.visits = append(it.visits, cur)
	for {
		leg, next, found := nextLeg(p, cur.ID, it.visitPos)
		if !found {
			return it
		}
		it.legPos[leg.ID] = len(it.legs)
		it.legs = append(it.legs, leg)
		it.visitPos[next.ID] = len(it.visits)
		it.visits = append(it.visits, next)
		cur = next
	}
}

func nextLeg(p Plan, from string, seen map[string]int) (models.Traverse, models.Visit, bool) {
	for _, t := range p.Outgoing(from) {
		v, ok := p.Visits.Get(t.TargetVisitID)
		if !ok || !v.Included {
			continue
		}
		if _, dup := seen[v.ID]; dup {
			continue
		}
		return t, v, true
	}
	return models.Traverse{}, models.Visit{}, false
}
