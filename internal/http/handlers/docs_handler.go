package handlers

import (
	"net/http"
	"strconv"

	"travelmap/internal/http/middleware"
	"travelmap/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /itinerary.pdf returns the itinerary document (inline).
func (h TripHandler) ItineraryPDF(c *gin.Context) {
	svc := services.DocsService{
		Trips:     h.Trips,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateItinerary(c.Request.Context(), c.Param("tripId"), c.Param("planId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func versionHeader(v uint64) string {
	return strconv.FormatUint(v, 10)
}
