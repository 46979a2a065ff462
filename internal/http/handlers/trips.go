package handlers

import (
	"context"
	"net/http"

	"travelmap/internal/cache"
	"travelmap/internal/domain/models"
	"travelmap/internal/services"
	"travelmap/internal/utils"

	"github.com/gin-gonic/gin"
)

// TripHandler serves one plan of a trip under /api/trips/:tripId/plans/:planId.
type TripHandler struct {
	Trips *services.TripService
	Cache cache.Cache
}

func (h TripHandler) session(c *gin.Context) (*services.Session, bool) {
	sess, err := h.Trips.Open(c.Request.Context(), c.Param("tripId"), c.Param("planId"))
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return sess, true
}

func listHandler[T any](h TripHandler, list func(*services.Session) []T) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list(sess), "version": sess.Version()})
	}
}

func createHandler[T any](h TripHandler, add func(*services.Session, context.Context, T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		var in T
		if !BindJSONOrError(c, &in) {
			return
		}
		out, err := add(sess, c.Request.Context(), in)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": out, "version": sess.Version()})
	}
}

func updateHandler[P, T any](h TripHandler, upd func(*services.Session, context.Context, string, P) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		var patch P
		if !BindJSONOrError(c, &patch) {
			return
		}
		out, err := upd(sess, c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": out, "version": sess.Version()})
	}
}

func removeHandler(h TripHandler, rm func(*services.Session, context.Context, string) (models.Cascade, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.session(c)
		if !ok {
			return
		}
		removed, err := rm(sess, c.Request.Context(), c.Param("id"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed, "version": sess.Version()})
	}
}

type placeRequest struct {
	models.Place
	Country *models.Country `json:"country"`
}

type placePatchRequest struct {
	models.PlacePatch
	Country *models.Country `json:"country"`
}

func (h TripHandler) CreatePlace(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req placeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = utils.NormalizeSpace(req.Name)
	p, err := sess.AddPlace(c.Request.Context(), req.Place, req.Country)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p, "version": sess.Version()})
}

func (h TripHandler) UpdatePlace(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req placePatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, err := sess.UpdatePlace(c.Request.Context(), c.Param("id"), req.PlacePatch, req.Country)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p, "version": sess.Version()})
}

type startRequest struct {
	VisitID   *string `json:"visit_id"`
	StartDate *string `json:"start_date"`
}

// PUT /start sets the start visit and/or the start date.
func (h TripHandler) SetStart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req startRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.VisitID == nil && req.StartDate == nil {
		RespondError(c, http.StatusBadRequest, "visit_id atau start_date wajib diisi", nil)
		return
	}
	plan := sess.Plan()
	var err error
	if req.VisitID != nil {
		if plan, err = sess.SetStartVisit(c.Request.Context(), *req.VisitID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.StartDate != nil {
		if plan, err = sess.SetStartDate(c.Request.Context(), *req.StartDate); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": plan, "version": sess.Version()})
}

// POST /reload drops the cached session so the next request reads storage.
func (h TripHandler) Reload(c *gin.Context) {
	h.Trips.Invalidate(c.Param("tripId"), c.Param("planId"))
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": sess.Version()})
}

// Mount registers the plan routes on g.
func (h TripHandler) Mount(g *gin.RouterGroup) {
	g.GET("", h.GetPlan)
	g.POST("/reload", h.Reload)
	g.PUT("/start", h.SetStart)

	g.GET("/places", listHandler(h, (*services.Session).Places))
	g.POST("/places", h.CreatePlace)
	g.PUT("/places/:id", h.UpdatePlace)
	g.DELETE("/places/:id", removeHandler(h, (*services.Session).RemovePlace))

	g.GET("/routes", listHandler(h, (*services.Session).Routes))
	g.POST("/routes", createHandler(h, (*services.Session).AddRoute))
	g.PUT("/routes/:id", updateHandler(h, (*services.Session).UpdateRoute))
	g.DELETE("/routes/:id", removeHandler(h, (*services.Session).RemoveRoute))

	g.GET("/visits", listHandler(h, (*services.Session).Visits))
	g.POST("/visits", createHandler(h, (*services.Session).AddVisit))
	g.PUT("/visits/:id", updateHandler(h, (*services.Session).UpdateVisit))
	g.DELETE("/visits/:id", removeHandler(h, (*services.Session).RemoveVisit))

	g.GET("/traverses", listHandler(h, (*services.Session).Traverses))
	g.POST("/traverses", createHandler(h, (*services.Session).AddTraverse))
	g.PUT("/traverses/:id", updateHandler(h, (*services.Session).UpdateTraverse))
	g.DELETE("/traverses/:id", removeHandler(h, (*services.Session).RemoveTraverse))
	g.GET("/traverses/:id/rent-until", h.RentUntilOptions)

	g.GET("/activities", listHandler(h, (*services.Session).Activities))
	g.POST("/activities", createHandler(h, (*services.Session).AddActivity))
	g.PUT("/activities/:id", updateHandler(h, (*services.Session).UpdateActivity))
	g.DELETE("/activities/:id", removeHandler(h, (*services.Session).RemoveActivity))

	g.GET("/place-notes", listHandler(h, (*services.Session).PlaceNotes))
	g.POST("/place-notes", createHandler(h, (*services.Session).AddPlaceNote))
	g.PUT("/place-notes/:id", updateHandler(h, (*services.Session).UpdatePlaceNote))
	g.DELETE("/place-notes/:id", removeHandler(h, (*services.Session).RemovePlaceNote))

	g.GET("/country-notes", listHandler(h, (*services.Session).CountryNotes))
	g.POST("/country-notes", createHandler(h, (*services.Session).AddCountryNote))
	g.PUT("/country-notes/:id", updateHandler(h, (*services.Session).UpdateCountryNote))
	g.DELETE("/country-notes/:id", removeHandler(h, (*services.Session).RemoveCountryNote))

	g.GET("/route-notes", listHandler(h, (*services.Session).RouteNotes))
	g.POST("/route-notes", createHandler(h, (*services.Session).AddRouteNote))
	g.PUT("/route-notes/:id", updateHandler(h, (*services.Session).UpdateRouteNote))
	g.DELETE("/route-notes/:id", removeHandler(h, (*services.Session).RemoveRouteNote))

	g.GET("/countries", listHandler(h, (*services.Session).Countries))

	g.GET("/itinerary", h.Itinerary)
	g.GET("/itinerary.pdf", h.ItineraryPDF)
	g.GET("/schedule", h.Schedule)
	g.GET("/geometry", h.Geometry)
	g.GET("/markers", h.Markers)

	g.GET("/costs", h.Costs)
	g.GET("/costs/countries/:id", h.CountryCost)
	g.GET("/costs/places/:id", h.PlaceCost)
	g.GET("/costs/routes/:id", h.RouteCost)
	g.GET("/costs/visits/:id", h.VisitCost)
	g.GET("/costs/traverses/:id", h.TraverseCost)
}

func (h TripHandler) GetPlan(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trip":    sess.Trip(),
		"plan":    sess.Plan(),
		"version": sess.Version(),
	})
}
