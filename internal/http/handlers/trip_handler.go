// README: Trip handlers for create/get/list/transition/notes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"convoy/internal/modules/trip"
	"convoy/internal/types"
)

// TripService is the slice of the trip module the HTTP layer uses.
type TripService interface {
	Create(ctx context.Context, cmd trip.CreateCommand) (types.ID, error)
	Transition(ctx context.Context, cmd trip.TransitionCommand) (trip.TransitionResult, error)
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	List(ctx context.Context, status trip.Status, limit int) ([]trip.Trip, error)
	UpdateNotes(ctx context.Context, id types.ID, notes string) error
}

type TripHandler struct {
	trips TripService
}

func NewTripHandler(svc TripService) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	VehicleID   string `json:"vehicle_id"`
	OriginHubID string `json:"origin_hub_id"`
	Notes       string `json:"notes"`
	Stops       []struct {
		VenueID   string `json:"venue_id"`
		StopOrder int    `json:"stop_order"`
	} `json:"stops"`
	AssetIDs     []string `json:"asset_ids"`
	PersonnelIDs []string `json:"personnel_ids"`
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := trip.CreateCommand{
		VehicleID:   types.ID(req.VehicleID),
		OriginHubID: types.ID(req.OriginHubID),
		Notes:       req.Notes,
	}
	for _, st := range req.Stops {
		cmd.Stops = append(cmd.Stops, trip.Stop{VenueID: types.ID(st.VenueID), StopOrder: st.StopOrder})
	}
	for _, id := range req.AssetIDs {
		cmd.AssetIDs = append(cmd.AssetIDs, types.ID(id))
	}
	for _, id := range req.PersonnelIDs {
		cmd.PersonnelIDs = append(cmd.PersonnelIDs, types.ID(id))
	}
	id, err := h.trips.Create(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip_id": id, "status": trip.StatusDraft})
}

func (h *TripHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing trip id")
		return
	}
	t, err := h.trips.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TripHandler) List(c *gin.Context) {
	status := trip.Status(c.Query("status"))
	trips, err := h.trips.List(c.Request.Context(), status, intQuery(c, "limit"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

type transitionTripReq struct {
	Status string `json:"status"`
}

func (h *TripHandler) Transition(c *gin.Context) {
	id := c.Param("id")
	var req transitionTripReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing target status")
		return
	}
	res, err := h.trips.Transition(c.Request.Context(), trip.TransitionCommand{
		TripID: types.ID(id),
		To:     trip.Status(req.Status),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"status":         res.NewStatus,
		"assets_updated": res.AssetsUpdated,
	})
}

type notesReq struct {
	Notes string `json:"notes"`
}

func (h *TripHandler) UpdateNotes(c *gin.Context) {
	id := c.Param("id")
	var req notesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.trips.UpdateNotes(c.Request.Context(), types.ID(id), req.Notes); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
