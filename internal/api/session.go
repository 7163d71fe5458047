package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/service"
)

type StartSessionRequest struct {
	CreatureID uint `json:"creature_id" binding:"required"`
}

type MoveRequest struct {
	MoveIndex *int `json:"move_index" binding:"required"`
}

// GetSession returns the current battle snapshot.
func (h *BattleHandler) GetSession(c *gin.Context) {
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, h.battle.Snapshot())
}

// StartSession begins a battle with the chosen creature.
func (h *BattleHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.battle.StartSession(req.CreatureID)
	if err != nil {
		status, msg := startErrorStatus(err)
		if status == http.StatusInternalServerError {
			logging.Error("failed to start session", err, logging.Fields{constants.LogFieldCreature: req.CreatureID})
		}
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func startErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnknownCreature):
		return http.StatusNotFound, constants.ErrCreatureNotFound
	case errors.Is(err, service.ErrRosterTooSmall):
		return http.StatusConflict, constants.ErrRosterTooSmall
	case errors.Is(err, service.ErrSessionActive):
		return http.StatusConflict, constants.ErrSessionAlreadyActive
	default:
		return http.StatusInternalServerError, constants.ErrFailedStartSession
	}
}

// SubmitMove forwards the player's move. Moves the engine ignores (wrong
// turn, busy, concluded) still answer 202 with accepted=false.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	accepted := h.battle.SubmitPlayerMove(*req.MoveIndex)
	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted, "snapshot": h.battle.Snapshot()})
}

// ResetSession discards the current battle.
func (h *BattleHandler) ResetSession(c *gin.Context) {
	h.battle.ResetToSelection()
	c.JSON(http.StatusOK, h.battle.Snapshot())
}
