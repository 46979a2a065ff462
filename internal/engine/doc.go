// Package engine derives the traveled itinerary, rental windows and cost
// breakdowns of a Plan from flat Trip/Plan tables.
//
// Everything here is a pure function of a State (one Trip plus one of its
// Plans). Tables are immutable: every add or remove returns a new State, so a
// reader holding a State never observes a half-applied cascade.
//
// Key components:
//   - Table, Trip, Plan: id-keyed tables and their derived views
//   - Resolve/View: itinerary walk, rental windows, costs, schedule, geometry
//   - Add*/Update*/Remove*: mutations, removals report a models.Cascade
//
// Cross references are ids resolved through the owning table, never
// pointers. Resolve checks that every reference resolves and returns a
// domain.IntegrityError otherwise.
package engine
