package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/QuizMaster/internal/dto"
	"github.com/lshigami/QuizMaster/internal/service"
	"github.com/rs/zerolog/log"
)

type SyncController struct {
	syncService  service.QuizSyncService
	connectivity service.ConnectivityService
}

func NewSyncController(syncService service.QuizSyncService, connectivity service.ConnectivityService) *SyncController {
	return &SyncController{syncService: syncService, connectivity: connectivity}
}

// TriggerSync godoc
// @Summary (Admin) Start a background sync cycle now
// @Tags Admin - Sync
// @Produce json
// @Success 202 {object} dto.MessageResponse "Sync cycle started"
// @Failure 409 {object} dto.ErrorResponse "A sync cycle is already running"
// @Router /admin/sync [post]
func (c *SyncController) TriggerSync(ctx *gin.Context) {
	if !c.syncService.TriggerCycle() {
		log.Info().Msg("Admin TriggerSync: Cycle already running")
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "A sync cycle is already running"})
		return
	}
	log.Info().Msg("Admin TriggerSync: Cycle started")
	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Sync cycle started"})
}

// UpdateConnectivity godoc
// @Summary (Admin) Report host connectivity
// @Description The host reports network state changes. Going back online starts a sync cycle.
// @Tags Admin - Sync
// @Accept json
// @Produce json
// @Param connectivity body dto.ConnectivityUpdateRequest true "Current connectivity"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/connectivity [post]
func (c *SyncController) UpdateConnectivity(ctx *gin.Context) {
	var req dto.ConnectivityUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin UpdateConnectivity: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	c.connectivity.SetOnline(*req.Online)
	if *req.Online {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Online"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Offline"})
}
