package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/logging"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/service"
	"github.com/TBKT-SYSTEM/pokemon-battle/internal/storage"
)

// ListRoster returns every selectable creature.
func (h *BattleHandler) ListRoster(c *gin.Context) {
	roster, err := h.battle.ListRoster()
	if err != nil {
		logging.Error("failed to list roster", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, roster)
}

// GetCreature returns one creature by case-insensitive name.
func (h *BattleHandler) GetCreature(c *gin.Context) {
	cr, err := h.finder.GetCreatureByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrCreatureNotFound) || errors.Is(err, service.ErrUnknownCreature) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCreatureNotFound})
			return
		}
		logging.Error("failed to look up creature", err, logging.Fields{constants.LogFieldName: c.Param("name")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRoster})
		return
	}
	c.JSON(http.StatusOK, cr)
}
