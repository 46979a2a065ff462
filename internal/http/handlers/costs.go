package handlers

import (
	"net/http"
	"time"

	"travelmap/internal/cache"
	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/http/middleware"
	"travelmap/internal/utils"

	"github.com/gin-gonic/gin"
)

const costCacheTTL = 6 * time.Hour

// GET /costs returns the plan total with per-country, per-route and
// per-visit lines.
func (h TripHandler) Costs(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	fp := view.Fingerprint()
	key := cache.CostKey(sess.Key, fp)
	reqID := middleware.GetRequestID(c)
	cacheable := h.Cache != nil && fp != ""

	var summary engine.Summary
	if cacheable {
		hit, err := h.Cache.Get(c.Request.Context(), key, &summary)
		if err != nil {
			utils.LogError(reqID, "costs", "cache_get", err)
		}
		if hit {
			summary.Version = view.Version()
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	summary = view.Summary()
	if cacheable {
		if err := h.Cache.Set(c.Request.Context(), key, summary, costCacheTTL); err != nil {
			utils.LogError(reqID, "costs", "cache_set", err)
		}
	}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, summary)
}

// costLookup answers one per-entity cost route. exists guards unknown ids;
// an existing entity outside the itinerary costs zero.
func (h TripHandler) costLookup(c *gin.Context, resource string, exists func(engine.State, string) bool, cost func(*engine.View, string) models.CostComparison) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	id := c.Param("id")
	if !exists(view.State(), id) {
		RespondDomainError(c, domain.NotFoundError{Resource: resource, ID: id})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"cost":    cost(view, id),
		"version": view.Version(),
	})
}

func (h TripHandler) CountryCost(c *gin.Context) {
	h.costLookup(c, "country",
		func(s engine.State, id string) bool { return id == "" || s.Trip.Countries.Has(id) },
		(*engine.View).CountryCost)
}

func (h TripHandler) PlaceCost(c *gin.Context) {
	h.costLookup(c, "place",
		func(s engine.State, id string) bool { return s.Trip.Places.Has(id) },
		(*engine.View).PlaceCost)
}

func (h TripHandler) RouteCost(c *gin.Context) {
	h.costLookup(c, "route",
		func(s engine.State, id string) bool { return s.Trip.Routes.Has(id) },
		(*engine.View).RouteCost)
}

func (h TripHandler) VisitCost(c *gin.Context) {
	h.costLookup(c, "visit",
		func(s engine.State, id string) bool { return s.Plan.Visits.Has(id) },
		(*engine.View).VisitCost)
}

func (h TripHandler) TraverseCost(c *gin.Context) {
	h.costLookup(c, "traverse",
		func(s engine.State, id string) bool { return s.Plan.Traverses.Has(id) },
		(*engine.View).TraverseCost)
}

type rentalSpan struct {
	TraverseID string `json:"traverse_id"`
	RentalID   string `json:"rental_id"`
}

// GET /itinerary
func (h TripHandler) Itinerary(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	legs := view.Legs()
	rentals := make([]rentalSpan, 0, len(legs))
	for _, leg := range legs {
		if r, ok := view.TraverseRental(leg.ID); ok {
			rentals = append(rentals, rentalSpan{TraverseID: leg.ID, RentalID: r.ID})
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"version":        view.Version(),
		"start_visit_id": view.State().Plan.Record.StartVisitID,
		"visits":         view.Itinerary(),
		"legs":           legs,
		"rentals":        rentals,
	})
}

// GET /schedule
func (h TripHandler) Schedule(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	stops, err := sess.View().Schedule()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops, "version": sess.Version()})
}

// GET /traverses/:id/rent-until
func (h TripHandler) RentUntilOptions(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.View()
	id := c.Param("id")
	if !view.State().Plan.Traverses.Has(id) {
		RespondDomainError(c, domain.NotFoundError{Resource: "traverse", ID: id})
		return
	}
	options := view.RentUntilOptions(id)
	if options == nil {
		options = []models.Visit{}
	}
	c.JSON(http.StatusOK, gin.H{"data": options, "version": view.Version()})
}

// GET /geometry
func (h TripHandler) Geometry(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.Header("X-Plan-Version", versionHeader(sess.Version()))
	c.JSON(http.StatusOK, sess.View().Geometry())
}

// GET /markers
func (h TripHandler) Markers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.Header("X-Plan-Version", versionHeader(sess.Version()))
	c.JSON(http.StatusOK, sess.View().PlaceMarkers())
}
