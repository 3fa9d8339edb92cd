// README: Asset handlers for intake/get/transition/movement history.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"convoy/internal/modules/asset"
	"convoy/internal/modules/movement"
	"convoy/internal/types"
)

// AssetService is the slice of the asset module the HTTP layer uses.
type AssetService interface {
	Create(ctx context.Context, cmd asset.CreateCommand) (types.ID, error)
	Transition(ctx context.Context, cmd asset.TransitionCommand) (asset.TransitionResult, error)
	Get(ctx context.Context, id types.ID) (*asset.Asset, error)
	List(ctx context.Context, status asset.Status, hubID types.ID, limit int) ([]asset.Asset, error)
	Movements(ctx context.Context, id types.ID, limit int) ([]movement.Record, error)
}

type AssetHandler struct {
	assets AssetService
}

func NewAssetHandler(svc AssetService) *AssetHandler {
	return &AssetHandler{assets: svc}
}

type createAssetReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	HubID    string `json:"hub_id"`
}

func (h *AssetHandler) Create(c *gin.Context) {
	var req createAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.assets.Create(c.Request.Context(), asset.CreateCommand{
		Name:     req.Name,
		Category: req.Category,
		HubID:    types.ID(req.HubID),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset_id": id, "status": asset.StatusAtHub})
}

func (h *AssetHandler) Get(c *gin.Context) {
	id := c.Param("id")
	a, err := h.assets.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assets.List(c.Request.Context(),
		asset.Status(c.Query("status")), types.ID(c.Query("hub_id")), intQuery(c, "limit"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

type transitionAssetReq struct {
	Status  string `json:"status"`
	TripID  string `json:"trip_id"`
	HubID   string `json:"hub_id"`
	VenueID string `json:"venue_id"`
	Note    string `json:"note"`
}

func (h *AssetHandler) Transition(c *gin.Context) {
	id := c.Param("id")
	var req transitionAssetReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing target status")
		return
	}
	cmd := asset.TransitionCommand{
		AssetID: types.ID(id),
		To:      asset.Status(req.Status),
		Note:    req.Note,
	}
	if req.TripID != "" {
		v := types.ID(req.TripID)
		cmd.TripID = &v
	}
	if req.HubID != "" {
		v := types.ID(req.HubID)
		cmd.HubID = &v
	}
	if req.VenueID != "" {
		v := types.ID(req.VenueID)
		cmd.VenueID = &v
	}
	res, err := h.assets.Transition(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": res.NewStatus})
}

func (h *AssetHandler) Movements(c *gin.Context) {
	id := c.Param("id")
	records, err := h.assets.Movements(c.Request.Context(), types.ID(id), intQuery(c, "limit"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": records})
}
