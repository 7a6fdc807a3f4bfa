package controller

import (
	"strconv"
	"time"

	"tippspiel/app_error"
	"tippspiel/repository"
	"tippspiel/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TournamentController struct {
	tournamentService *service.TournamentService
}

func NewTournamentController(db *gorm.DB) *TournamentController {
	return &TournamentController{
		tournamentService: service.NewTournamentService(db),
	}
}

func setupTournamentController(db *gorm.DB) []RouteInfo {
	e := NewTournamentController(db)
	basePath := "/tournaments"
	admin := []string{string(repository.PermissionAdmin)}
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.createTournamentHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "PUT", Path: "/:tournament_id/outcomes", HandlerFunc: e.setOutcomesHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "POST", Path: "/:tournament_id/matches", HandlerFunc: e.addMatchHandler(), Authenticated: true, RoleRequired: admin},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func (e *TournamentController) createTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var create TournamentCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.CreateTournament(create.Name)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toTournamentResponse(tournament))
	}
}

func (e *TournamentController) setOutcomesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var outcomes TournamentOutcomesUpdate
		if err := c.BindJSON(&outcomes); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.SetOutcomes(tournamentId, service.TournamentOutcomes{
			SeasonStart:      outcomes.SeasonStart,
			AutumnChampion:   outcomes.AutumnChampion,
			Champion:         outcomes.Champion,
			FirstCoachSacked: outcomes.FirstCoachSacked,
			TopScorer:        outcomes.TopScorer,
			RelegatedTeams:   outcomes.RelegatedTeams,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toTournamentResponse(tournament))
	}
}

func (e *TournamentController) addMatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var create MatchCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		match, err := e.tournamentService.AddMatch(tournamentId, service.MatchCreate{
			HomeTeam: create.HomeTeam,
			AwayTeam: create.AwayTeam,
			Kickoff:  create.Kickoff,
			Matchday: create.Matchday,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, &MatchResponse{
			Id:        match.Id,
			HomeTeam:  match.HomeTeam,
			AwayTeam:  match.AwayTeam,
			Kickoff:   match.Kickoff,
			Matchday:  match.Matchday,
			HomeScore: match.HomeScore,
			AwayScore: match.AwayScore,
		})
	}
}

type TournamentCreate struct {
	Name string `json:"name" binding:"required"`
}

type TournamentOutcomesUpdate struct {
	SeasonStart      *time.Time `json:"season_start"`
	AutumnChampion   string     `json:"autumn_champion"`
	Champion         string     `json:"champion"`
	FirstCoachSacked string     `json:"first_coach_sacked"`
	TopScorer        string     `json:"top_scorer"`
	RelegatedTeams   []string   `json:"relegated_teams"`
}

type MatchCreate struct {
	HomeTeam string    `json:"home_team" binding:"required"`
	AwayTeam string    `json:"away_team" binding:"required"`
	Kickoff  time.Time `json:"kickoff" binding:"required"`
	Matchday *int      `json:"matchday"`
}

type TournamentResponse struct {
	Id               int        `json:"id"`
	Name             string     `json:"name"`
	SeasonStart      *time.Time `json:"season_start"`
	AutumnChampion   string     `json:"autumn_champion"`
	Champion         string     `json:"champion"`
	FirstCoachSacked string     `json:"first_coach_sacked"`
	TopScorer        string     `json:"top_scorer"`
	RelegatedTeams   string     `json:"relegated_teams"`
}

func toTournamentResponse(tournament *repository.Tournament) *TournamentResponse {
	return &TournamentResponse{
		Id:               tournament.Id,
		Name:             tournament.Name,
		SeasonStart:      tournament.SeasonStart,
		AutumnChampion:   tournament.AutumnChampion,
		Champion:         tournament.Champion,
		FirstCoachSacked: tournament.FirstCoachSacked,
		TopScorer:        tournament.TopScorer,
		RelegatedTeams:   tournament.RelegatedTeams,
	}
}
