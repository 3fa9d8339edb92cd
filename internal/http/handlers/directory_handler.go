// README: Directory handlers for hubs, venues, vehicles and personnel.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"convoy/internal/modules/directory"
	"convoy/internal/types"
)

// DirectoryService is the slice of the directory module the HTTP layer uses.
type DirectoryService interface {
	CreateHub(ctx context.Context, name, city string) (types.ID, error)
	CreateVenue(ctx context.Context, name, address string) (types.ID, error)
	CreateVehicle(ctx context.Context, plate string, homeHubID types.ID) (types.ID, error)
	CreatePerson(ctx context.Context, name, role string) (types.ID, error)
	RenameHub(ctx context.Context, id types.ID, name string) error
	RenameVenue(ctx context.Context, id types.ID, name string) error
	ListHubs(ctx context.Context) ([]directory.Hub, error)
	ListVenues(ctx context.Context) ([]directory.Venue, error)
	ListVehicles(ctx context.Context) ([]directory.Vehicle, error)
	ListPersonnel(ctx context.Context) ([]directory.Person, error)
}

type DirectoryHandler struct {
	dir DirectoryService
}

func NewDirectoryHandler(svc DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{dir: svc}
}

type createHubReq struct {
	Name string `json:"name"`
	City string `json:"city"`
}

func (h *DirectoryHandler) CreateHub(c *gin.Context) {
	var req createHubReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.dir.CreateHub(c.Request.Context(), req.Name, req.City)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hub_id": id})
}

func (h *DirectoryHandler) ListHubs(c *gin.Context) {
	hubs, err := h.dir.ListHubs(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hubs": hubs})
}

type createVenueReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (h *DirectoryHandler) CreateVenue(c *gin.Context) {
	var req createVenueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.dir.CreateVenue(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"venue_id": id})
}

func (h *DirectoryHandler) ListVenues(c *gin.Context) {
	venues, err := h.dir.ListVenues(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *DirectoryHandler) RenameHub(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.dir.RenameHub(c.Request.Context(), types.ID(c.Param("id")), req.Name); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *DirectoryHandler) RenameVenue(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.dir.RenameVenue(c.Request.Context(), types.ID(c.Param("id")), req.Name); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createVehicleReq struct {
	Plate     string `json:"plate"`
	HomeHubID string `json:"home_hub_id"`
}

func (h *DirectoryHandler) CreateVehicle(c *gin.Context) {
	var req createVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.dir.CreateVehicle(c.Request.Context(), req.Plate, types.ID(req.HomeHubID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle_id": id})
}

func (h *DirectoryHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.dir.ListVehicles(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

type createPersonReq struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *DirectoryHandler) CreatePerson(c *gin.Context) {
	var req createPersonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.dir.CreatePerson(c.Request.Context(), req.Name, req.Role)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"person_id": id})
}

func (h *DirectoryHandler) ListPersonnel(c *gin.Context) {
	people, err := h.dir.ListPersonnel(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personnel": people})
}
