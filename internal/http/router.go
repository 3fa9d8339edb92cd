// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"convoy/internal/http/handlers"
	"convoy/internal/http/middleware"
)

func NewRouter(
	tripService handlers.TripService,
	assetService handlers.AssetService,
	directoryService handlers.DirectoryService,
	log *zap.Logger,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))

	tripHandler := handlers.NewTripHandler(tripService)
	r.POST("/api/trips", tripHandler.Create)
	r.GET("/api/trips", tripHandler.List)
	r.GET("/api/trips/:id", tripHandler.Get)
	r.POST("/api/trips/:id/transition", tripHandler.Transition)
	r.PATCH("/api/trips/:id/notes", tripHandler.UpdateNotes)

	assetHandler := handlers.NewAssetHandler(assetService)
	r.POST("/api/assets", assetHandler.Create)
	r.GET("/api/assets", assetHandler.List)
	r.GET("/api/assets/:id", assetHandler.Get)
	r.POST("/api/assets/:id/transition", assetHandler.Transition)
	r.GET("/api/assets/:id/movements", assetHandler.Movements)

	dirHandler := handlers.NewDirectoryHandler(directoryService)
	r.POST("/api/hubs", dirHandler.CreateHub)
	r.GET("/api/hubs", dirHandler.ListHubs)
	r.PATCH("/api/hubs/:id/name", dirHandler.RenameHub)
	r.POST("/api/venues", dirHandler.CreateVenue)
	r.GET("/api/venues", dirHandler.ListVenues)
	r.PATCH("/api/venues/:id/name", dirHandler.RenameVenue)
	r.POST("/api/vehicles", dirHandler.CreateVehicle)
	r.GET("/api/vehicles", dirHandler.ListVehicles)
	r.POST("/api/personnel", dirHandler.CreatePerson)
	r.GET("/api/personnel", dirHandler.ListPersonnel)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
