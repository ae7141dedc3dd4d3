package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Ironmarch/internal/battle/app"
	"Ironmarch/internal/battle/app/port"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/infra/notify"
	"Ironmarch/internal/shared/logs"
)

const defaultReportLimit = 20

// BattleHandler exposes the march, regroup and report endpoints.
type BattleHandler struct {
	marches *app.MarchService
	archive port.ReportArchive
	hub     *notify.Hub
}

func NewBattleHandler(marches *app.MarchService, archive port.ReportArchive, hub *notify.Hub) *BattleHandler {
	return &BattleHandler{
		marches: marches,
		archive: archive,
		hub:     hub,
	}
}

func (h *BattleHandler) Register(g *gin.RouterGroup) {
	g.POST("/armies/:id/march", h.march)
	g.POST("/armies/:id/regroup", h.regroup)
	g.GET("/regions/:id/reports", h.reports)
	g.GET("/channels/:channel/ws", h.subscribe)
}

type marchRequest struct {
	Destination int64 `json:"destination" binding:"required"`
}

func (h *BattleHandler) march(c *gin.Context) {
	armyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req marchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	arrival, err := h.marches.Dispatch(c.Request.Context(), entity.ArmyID(armyID), entity.RegionID(req.Destination))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"army_id": armyID, "arrival_at": arrival})
}

func (h *BattleHandler) regroup(c *gin.Context) {
	armyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.marches.Regroup(c.Request.Context(), entity.ArmyID(armyID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"army_id": armyID, "status": entity.StatusGarrisoned.String()})
}

func (h *BattleHandler) reports(c *gin.Context) {
	regionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit := defaultReportLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	reports, err := h.archive.RecentByRegion(c.Request.Context(), entity.RegionID(regionID), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if reports == nil {
		reports = []*entity.BattleReport{}
	}
	c.JSON(http.StatusOK, gin.H{"region_id": regionID, "reports": reports})
}

func (h *BattleHandler) subscribe(c *gin.Context) {
	channel := c.Param("channel")
	if channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing channel"})
		return
	}
	if err := h.hub.Subscribe(channel, c.Writer, c.Request); err != nil {
		logs.Warn("websocket upgrade failed", zap.String("channel", channel), zap.Error(err))
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrArmyNotFound), errors.Is(err, entity.ErrRegionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrArmyBusy), errors.Is(err, entity.ErrNotRegroupable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrImpassableTerrain):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logs.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
