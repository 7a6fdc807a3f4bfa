package controller

import (
	"strconv"

	"tippspiel/app_error"
	"tippspiel/auth"
	"tippspiel/repository"
	"tippspiel/scoring"
	"tippspiel/service"
	"tippspiel/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService  *service.UserService
	statsService *service.StatsService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService:  service.NewUserService(db),
		statsService: service.NewStatsService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	basePath := "/users"
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.createUserHandler(), Authenticated: true, RoleRequired: []string{string(repository.PermissionAdmin)}},
		{Method: "GET", Path: "/self", HandlerFunc: e.getUserHandler(), Authenticated: true},
		{Method: "GET", Path: "/:user_id/stats", HandlerFunc: e.getUserStatsHandler(), GroupScoped: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *UserController) getUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserById(c.GetInt(userIdKey))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toRepositoryUserResponse(user))
	}
}

// createUserHandler registers a user and hands out a token for them.
func (e *UserController) createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create UserCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.CreateUser(create.Username, create.IsAdmin)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		token, err := auth.CreateToken(user)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, &UserCreatedResponse{User: toRepositoryUserResponse(user), Token: token})
	}
}

func (e *UserController) getUserStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		membership := activeMembership(c)
		result, err := e.statsService.GetUserStats(membership.GroupId, userId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserStatsResponse(result))
	}
}

type UserCreate struct {
	Username string `json:"username" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserCreatedResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

type TipCountsResponse struct {
	Home int `json:"home"`
	Draw int `json:"draw"`
	Away int `json:"away"`
}

type ScorelineResponse struct {
	Scoreline string `json:"scoreline"`
	Count     int    `json:"count"`
}

type TeamPointsResponse struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

type StandingResponse struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type UserStatsResponse struct {
	User          *UserResponse         `json:"user"`
	Tips          TipCountsResponse     `json:"tips"`
	Hits          map[string]int        `json:"hits"`
	TopScorelines []*ScorelineResponse  `json:"top_scorelines"`
	TopTeams      []*TeamPointsResponse `json:"top_teams"`
	FlopTeams     []*TeamPointsResponse `json:"flop_teams"`
	Table         []*StandingResponse   `json:"table"`
}

func toTeamPointsResponse(teamPoints scoring.TeamPoints) *TeamPointsResponse {
	return &TeamPointsResponse{Team: teamPoints.Team, Points: teamPoints.Points}
}

func toUserStatsResponse(result *service.UserStatsResult) *UserStatsResponse {
	stats := result.Stats
	hits := make(map[string]int, len(stats.Hits))
	for outcome, count := range stats.Hits {
		hits[outcome.String()] = count
	}
	return &UserStatsResponse{
		User: toRepositoryUserResponse(result.User),
		Tips: TipCountsResponse{Home: stats.Tips.Home, Draw: stats.Tips.Draw, Away: stats.Tips.Away},
		Hits: hits,
		TopScorelines: utils.Map(stats.TopScorelines, func(s scoring.Scoreline) *ScorelineResponse {
			return &ScorelineResponse{Scoreline: s.Scoreline, Count: s.Count}
		}),
		TopTeams:  utils.Map(stats.TopTeams, toTeamPointsResponse),
		FlopTeams: utils.Map(stats.FlopTeams, toTeamPointsResponse),
		Table: utils.Map(stats.Table, func(s *scoring.PredictedStanding) *StandingResponse {
			return &StandingResponse{
				Position:       s.Position,
				Team:           s.Team,
				Played:         s.Played,
				Wins:           s.Wins,
				Draws:          s.Draws,
				Losses:         s.Losses,
				GoalsFor:       s.GoalsFor,
				GoalsAgainst:   s.GoalsAgainst,
				GoalDifference: s.GoalDifference,
				Points:         s.Points,
			}
		}),
	}
}
