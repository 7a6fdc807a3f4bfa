package controller

import (
	"time"

	"tippspiel/app_error"
	"tippspiel/scoring"
	"tippspiel/service"
	"tippspiel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TableController struct {
	leaderboardService *service.LeaderboardService
	matchdayService    *service.MatchdayService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		leaderboardService: service.NewLeaderboardService(db),
		matchdayService:    service.NewMatchdayService(db),
	}
}

func setupTableController(db *gorm.DB) []RouteInfo {
	e := NewTableController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/table", HandlerFunc: e.getTableHandler(), GroupScoped: true, Cached: true},
		{Method: "GET", Path: "/matchday", HandlerFunc: e.getMatchdayHandler(), GroupScoped: true},
		{Method: "GET", Path: "/bonus/table", HandlerFunc: e.getBonusTableHandler(), GroupScoped: true},
	}
}

// @Summary Get the season table
// @Description Season table of the active group over a window of matchdays.
// @Security BearerAuth
// @Tags Table
// @Produce json
// @Param group_id query int false "Group id"
// @Param view query string false "mdpoints, ranks or rankdiff"
// @Param from query int false "Window offset"
// @Param count query int false "Window size (4-15)"
// @Success 200 {object} TableResponse
// @Router /table [get]
func (e *TableController) getTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		view := scoring.ParseViewMode(c.Query("view"))
		window := scoring.Window{
			From:  intQuery(c, "from", 0),
			Count: intQuery(c, "count", scoring.DefaultWindowCount),
		}
		table, err := e.leaderboardService.GetTable(membership.GroupId, view, window, time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTableResponse(table))
	}
}

// @Summary Get the matchday grid
// @Description Predictions and points of every member for one matchday.
// @Security BearerAuth
// @Tags Table
// @Produce json
// @Param group_id query int false "Group id"
// @Param md query int false "Matchday"
// @Success 200 {object} MatchdayTableResponse
// @Router /matchday [get]
func (e *TableController) getMatchdayHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		table, err := e.matchdayService.GetMatchdayTable(membership.GroupId, membership.UserId, optionalIntQuery(c, "md"), time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMatchdayTableResponse(table))
	}
}

func (e *TableController) getBonusTableHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		membership := activeMembership(c)
		table, err := e.matchdayService.GetBonusTable(membership.GroupId, membership.UserId, time.Now())
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toBonusTableResponse(table))
	}
}

type TableRowResponse struct {
	User  *UserResponse `json:"user"`
	Rank  int           `json:"rank"`
	Cells []*int        `json:"cells"`
	Bonus *int          `json:"bonus"`
	Total int           `json:"total"`
}

type TableResponse struct {
	View           string              `json:"view"`
	Matchdays      []int               `json:"matchdays"`
	ShownMatchdays []int               `json:"shown_matchdays"`
	From           int                 `json:"from"`
	Count          int                 `json:"count"`
	PrevFrom       *int                `json:"prev_from"`
	NextFrom       *int                `json:"next_from"`
	BonusRevealed  bool                `json:"bonus_revealed"`
	Rows           []*TableRowResponse `json:"rows"`
}

func toTableResponse(table *scoring.Table) *TableResponse {
	return &TableResponse{
		View:           string(table.View),
		Matchdays:      table.Matchdays,
		ShownMatchdays: table.ShownMatchdays,
		From:           table.Window.From,
		Count:          table.Window.Count,
		PrevFrom:       table.PrevFrom,
		NextFrom:       table.NextFrom,
		BonusRevealed:  table.BonusRevealed,
		Rows: utils.Map(table.Rows, func(row *scoring.TableRow) *TableRowResponse {
			return &TableRowResponse{
				User:  toUserResponse(row.User),
				Rank:  row.Rank,
				Cells: row.Cells(table.View),
				Bonus: row.Bonus,
				Total: row.Total,
			}
		}),
	}
}

type MatchdayCellResponse struct {
	MatchId    int                 `json:"match_id"`
	Revealed   bool                `json:"revealed"`
	Prediction *PredictionResponse `json:"prediction"`
	Points     *int                `json:"points"`
}

type MatchdayRowResponse struct {
	User           *UserResponse           `json:"user"`
	Cells          []*MatchdayCellResponse `json:"cells"`
	Points         int                     `json:"points"`
	Bonus          *int                    `json:"bonus"`
	TotalWithBonus int                     `json:"total_with_bonus"`
}

type MatchdayTableResponse struct {
	Matchday      *int                   `json:"matchday"`
	Prev          *int                   `json:"prev"`
	Next          *int                   `json:"next"`
	BonusRevealed bool                   `json:"bonus_revealed"`
	Matches       []*MatchResponse       `json:"matches"`
	Rows          []*MatchdayRowResponse `json:"rows"`
}

func toMatchdayTableResponse(table *scoring.MatchdayTable) *MatchdayTableResponse {
	return &MatchdayTableResponse{
		Matchday:      table.Matchday,
		Prev:          table.Prev,
		Next:          table.Next,
		BonusRevealed: table.BonusRevealed,
		Matches:       utils.Map(table.Matches, toMatchResponse),
		Rows: utils.Map(table.Rows, func(row *scoring.MatchdayRow) *MatchdayRowResponse {
			response := &MatchdayRowResponse{
				User:           toUserResponse(row.User),
				Points:         row.Points,
				TotalWithBonus: row.TotalWithBonus,
				Cells: utils.Map(row.Cells, func(cell *scoring.MatchdayCell) *MatchdayCellResponse {
					return &MatchdayCellResponse{
						MatchId:    cell.MatchId,
						Revealed:   cell.Revealed,
						Prediction: toPredictionResponse(cell.Prediction),
						Points:     cell.Points,
					}
				}),
			}
			if table.BonusRevealed {
				bonus := row.Bonus
				response.Bonus = &bonus
			}
			return response
		}),
	}
}

type BonusRowResponse struct {
	User   *UserResponse     `json:"user"`
	Picks  map[string]string `json:"picks"`
	Points int               `json:"points"`
}

type BonusTableResponse struct {
	Revealed bool                `json:"revealed"`
	Own      map[string]string   `json:"own"`
	Rows     []*BonusRowResponse `json:"rows"`
}

func toBonusTableResponse(table *scoring.BonusTable) *BonusTableResponse {
	return &BonusTableResponse{
		Revealed: table.Revealed,
		Own:      toPicksResponse(table.Own),
		Rows: utils.Map(table.Rows, func(row *scoring.BonusRow) *BonusRowResponse {
			return &BonusRowResponse{
				User:   toUserResponse(row.User),
				Picks:  toPicksResponse(row.Picks),
				Points: row.Points,
			}
		}),
	}
}
