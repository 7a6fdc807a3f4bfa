package controller

import (
	"strconv"

	"tippspiel/app_error"
	"tippspiel/repository"
	"tippspiel/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const resultSourceAdmin = "admin"

type MatchController struct {
	resultService *service.ResultService
}

func NewMatchController(db *gorm.DB) *MatchController {
	return &MatchController{
		resultService: service.NewResultService(db),
	}
}

func setupMatchController(db *gorm.DB) []RouteInfo {
	e := NewMatchController(db)
	basePath := "/matches"
	routes := []RouteInfo{
		{Method: "PUT", Path: "/:match_id/result", HandlerFunc: e.setResultHandler(), Authenticated: true, RoleRequired: []string{string(repository.PermissionAdmin)}},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *MatchController) setResultHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		matchId, err := strconv.Atoi(c.Param("match_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var result MatchResultUpdate
		if err := c.BindJSON(&result); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.resultService.ApplyResult(matchId, result.HomeScore, result.AwayScore, resultSourceAdmin)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Status(204)
	}
}

type MatchResultUpdate struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}
