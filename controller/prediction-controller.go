package controller

import (
	"time"

	"tippspiel/app_error"
	"tippspiel/service"
	"tippspiel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PredictionController struct {
	predictionService *service.PredictionService
	bonusService      *service.BonusService
}

func NewPredictionController(db *gorm.DB) *PredictionController {
	return &PredictionController{
		predictionService: service.NewPredictionService(db),
		bonusService:      service.NewBonusService(db),
	}
}

func setupPredictionController(db *gorm.DB) []RouteInfo {
	e := NewPredictionController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/predictions", HandlerFunc: e.getPredictionSheetHandler(), GroupScoped: true},
		{Method: "PUT", Path: "/predictions", HandlerFunc: e.submitPredictionsHandler(), GroupScoped: true},
		{Method: "GET", Path: "/bonus", HandlerFunc: e.getBonusPredictionsHandler(), GroupScoped: true},
		{Method: "PUT", Path: "/bonus", HandlerFunc: e.submitBonusPredictionsHandler(), GroupScoped: true},
	}
}

func (e *PredictionController) getPredictionSheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		sheet, err := e.predictionService.GetPredictionSheet(membership.UserId, membership.GroupId, optionalIntQuery(c, "md"), time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toPredictionSheetResponse(sheet))
	}
}

func (e *PredictionController) submitPredictionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		var inputs []PredictionCreate
		if err := c.BindJSON(&inputs); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := e.predictionService.SubmitPredictions(membership.UserId, membership.GroupId, utils.Map(inputs, PredictionCreate.toInput), time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, &SubmitResultResponse{
			Saved:         result.Saved,
			SkippedLocked: result.SkippedLocked,
			Ignored:       result.Ignored,
		})
	}
}

func (e *PredictionController) getBonusPredictionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		now := time.Now()
		picks, err := e.bonusService.GetBonusPredictions(membership.UserId, membership.GroupId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		locked, err := e.bonusService.IsLocked(membership.GroupId, now)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, &BonusPicksResponse{Locked: locked, Picks: toPicksResponse(picks)})
	}
}

func (e *PredictionController) submitBonusPredictionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		var picks map[string]string
		if err := c.BindJSON(&picks); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		merged, err := e.bonusService.SubmitBonusPredictions(membership.UserId, membership.GroupId, picks, time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, &BonusPicksResponse{Locked: false, Picks: toPicksResponse(merged)})
	}
}

type PredictionCreate struct {
	MatchId  int  `json:"match_id" binding:"required"`
	PredHome *int `json:"pred_home"`
	PredAway *int `json:"pred_away"`
}

func (p PredictionCreate) toInput() service.PredictionInput {
	return service.PredictionInput{MatchId: p.MatchId, PredHome: p.PredHome, PredAway: p.PredAway}
}

type SubmitResultResponse struct {
	Saved         int `json:"saved"`
	SkippedLocked int `json:"skipped_locked"`
	Ignored       int `json:"ignored"`
}

type PredictionSheetEntryResponse struct {
	Match      *MatchResponse      `json:"match"`
	Prediction *PredictionResponse `json:"prediction"`
	Locked     bool                `json:"locked"`
}

type PredictionSheetResponse struct {
	Matchday *int                            `json:"matchday"`
	Prev     *int                            `json:"prev"`
	Next     *int                            `json:"next"`
	Entries  []*PredictionSheetEntryResponse `json:"entries"`
}

type BonusPicksResponse struct {
	Locked bool              `json:"locked"`
	Picks  map[string]string `json:"picks"`
}

func toPredictionSheetResponse(sheet *service.PredictionSheet) *PredictionSheetResponse {
	return &PredictionSheetResponse{
		Matchday: sheet.Matchday,
		Prev:     sheet.Prev,
		Next:     sheet.Next,
		Entries: utils.Map(sheet.Entries, func(entry *service.PredictionSheetEntry) *PredictionSheetEntryResponse {
			return &PredictionSheetEntryResponse{
				Match:      toMatchResponse(entry.Match),
				Prediction: toPredictionResponse(entry.Prediction),
				Locked:     entry.Locked,
			}
		}),
	}
}
