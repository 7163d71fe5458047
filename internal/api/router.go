package api

import (
	"github.com/gin-gonic/gin"

	"github.com/TBKT-SYSTEM/pokemon-battle/internal/constants"
)

// RegisterRoutes mounts the battle API under /api.
func RegisterRoutes(router gin.IRouter, h *BattleHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.GET(constants.RouteRoster, h.ListRoster)
		apiRoutes.GET(constants.RouteRosterByName, h.GetCreature)

		apiRoutes.GET(constants.RouteSession, h.GetSession)
		apiRoutes.POST(constants.RouteSession, h.StartSession)
		apiRoutes.POST(constants.RouteSessionMove, h.SubmitMove)
		apiRoutes.POST(constants.RouteSessionReset, h.ResetSession)
		apiRoutes.GET(constants.RouteSessionStream, h.Stream)
	}
}
