package service

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"tippspiel/app_error"
	"tippspiel/repository"
	"tippspiel/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func intPtr(i int) *int {
	return &i
}

type world struct {
	db         *gorm.DB
	tournament *repository.Tournament
	group      *repository.Group
	ana        *repository.User
	ben        *repository.User
	outsider   *repository.User
	// played is finished, upcoming kicks off after now
	played   *repository.Match
	upcoming *repository.Match
}

func newWorld(t *testing.T) *world {
	db := openTestDB(t)
	seasonStart := now.Add(-30 * 24 * time.Hour)
	w := &world{db: db, tournament: &repository.Tournament{
		Name:           "Bundesliga",
		SeasonStart:    &seasonStart,
		Champion:       "Bayern",
		RelegatedTeams: "Bochum, Kiel",
	}}
	require.NoError(t, db.Create(w.tournament).Error)
	w.ana = &repository.User{Username: "ana"}
	w.ben = &repository.User{Username: "Ben"}
	w.outsider = &repository.User{Username: "zed"}
	for _, user := range []*repository.User{w.ana, w.ben, w.outsider} {
		require.NoError(t, db.Create(user).Error)
	}
	group, err := repository.NewGroupRepository(db).CreateGroupWithCreator(&repository.Group{
		TournamentId: w.tournament.Id,
		Name:         "Office",
		JoinCode:     "OFFICE22",
	}, w.ana.Id)
	require.NoError(t, err)
	w.group = group
	require.NoError(t, repository.NewGroupRepository(db).AddMembership(w.ben.Id, group.Id))

	w.played = &repository.Match{
		TournamentId: w.tournament.Id,
		HomeTeam:     "Bayern",
		AwayTeam:     "Leipzig",
		Kickoff:      now.Add(-48 * time.Hour),
		Matchday:     intPtr(1),
		HomeScore:    intPtr(2),
		AwayScore:    intPtr(1),
	}
	w.upcoming = &repository.Match{
		TournamentId: w.tournament.Id,
		HomeTeam:     "Kiel",
		AwayTeam:     "Bochum",
		Kickoff:      now.Add(48 * time.Hour),
		Matchday:     intPtr(2),
	}
	require.NoError(t, db.Create(w.played).Error)
	require.NoError(t, db.Create(w.upcoming).Error)
	return w
}

func (w *world) predict(t *testing.T, user *repository.User, match *repository.Match, home, away int) {
	require.NoError(t, repository.NewPredictionRepository(w.db).UpsertPredictions([]*repository.Prediction{
		{UserId: user.Id, GroupId: w.group.Id, MatchId: match.Id, PredHome: intPtr(home), PredAway: intPtr(away)},
	}))
}

func TestSnapshotSkipsUnknownBonusTypes(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.db.Create(&repository.BonusPrediction{
		UserId: w.ana.Id, GroupId: w.group.Id, TournamentId: w.tournament.Id, BonusType: "meister", Value: "bayern",
	}).Error)
	require.NoError(t, w.db.Create(&repository.BonusPrediction{
		UserId: w.ana.Id, GroupId: w.group.Id, TournamentId: w.tournament.Id, BonusType: "legacy", Value: "x",
	}).Error)

	snapshot, err := NewSnapshotService(w.db).GetSnapshot(w.group.Id)
	require.NoError(t, err)
	require.Len(t, snapshot.BonusPredictions, 1)
	assert.Equal(t, scoring.BonusChampion, snapshot.BonusPredictions[0].BonusType)
	assert.Len(t, snapshot.Users, 2, "outsider is not part of the group")
	assert.Len(t, snapshot.Matches, 2)
	assert.Equal(t, "Bochum, Kiel", snapshot.Tournament.RelegatedTeams)
}

func TestLeaderboardService(t *testing.T) {
	w := newWorld(t)
	w.predict(t, w.ana, w.played, 2, 1)
	w.predict(t, w.ben, w.played, 1, 0)
	require.NoError(t, w.db.Create(&repository.BonusPrediction{
		UserId: w.ben.Id, GroupId: w.group.Id, TournamentId: w.tournament.Id, BonusType: "meister", Value: " bayern ",
	}).Error)

	table, err := NewLeaderboardService(w.db).GetTable(w.group.Id, scoring.ViewMatchdayPoints, scoring.Window{Count: 8}, now)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.True(t, table.BonusRevealed)
	assert.Equal(t, "Ben", table.Rows[0].User.Username)
	assert.Equal(t, 3+5, table.Rows[0].Total)
	assert.Equal(t, "ana", table.Rows[1].User.Username)
	assert.Equal(t, 4, table.Rows[1].Total)
}

func TestMatchdayServiceHidesForeignPredictions(t *testing.T) {
	w := newWorld(t)
	w.predict(t, w.ana, w.upcoming, 1, 1)
	w.predict(t, w.ben, w.upcoming, 0, 2)

	table, err := NewMatchdayService(w.db).GetMatchdayTable(w.group.Id, w.ana.Id, nil, now)
	require.NoError(t, err)
	require.NotNil(t, table.Matchday)
	assert.Equal(t, 2, *table.Matchday, "defaults to the next upcoming matchday")
	for _, row := range table.Rows {
		cell := row.Cells[0]
		assert.False(t, cell.Revealed)
		assert.Nil(t, cell.Points)
		if row.User.Id == w.ana.Id {
			assert.NotNil(t, cell.Prediction)
		} else {
			assert.Nil(t, cell.Prediction)
		}
	}
}

func TestSubmitPredictions(t *testing.T) {
	w := newWorld(t)
	service := NewPredictionService(w.db)

	result, err := service.SubmitPredictions(w.ana.Id, w.group.Id, []PredictionInput{
		{MatchId: w.played.Id, PredHome: intPtr(2), PredAway: intPtr(1)},
		{MatchId: w.upcoming.Id, PredHome: intPtr(1), PredAway: intPtr(0)},
		{MatchId: w.upcoming.Id, PredHome: intPtr(3), PredAway: intPtr(3)},
		{MatchId: w.upcoming.Id, PredHome: intPtr(1)},
		{MatchId: w.upcoming.Id, PredHome: intPtr(-1), PredAway: intPtr(0)},
		{MatchId: 9999, PredHome: intPtr(1), PredAway: intPtr(0)},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.SkippedLocked)
	assert.Equal(t, 3, result.Ignored)

	stored, err := repository.NewPredictionRepository(w.db).GetPredictionsForUser(w.ana.Id, w.group.Id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, w.upcoming.Id, stored[0].MatchId)
	assert.Equal(t, 3, *stored[0].PredHome)
	assert.Equal(t, 3, *stored[0].PredAway)

	// resubmitting updates in place
	result, err = service.SubmitPredictions(w.ana.Id, w.group.Id, []PredictionInput{
		{MatchId: w.upcoming.Id, PredHome: intPtr(0), PredAway: intPtr(1)},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	stored, err = repository.NewPredictionRepository(w.db).GetPredictionsForUser(w.ana.Id, w.group.Id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 0, *stored[0].PredHome)
}

func TestSubmitPredictionsAtKickoffIsLocked(t *testing.T) {
	w := newWorld(t)
	result, err := NewPredictionService(w.db).SubmitPredictions(w.ana.Id, w.group.Id, []PredictionInput{
		{MatchId: w.upcoming.Id, PredHome: intPtr(1), PredAway: intPtr(0)},
	}, w.upcoming.Kickoff)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Saved)
	assert.Equal(t, 1, result.SkippedLocked)
}

func TestGetPredictionSheet(t *testing.T) {
	w := newWorld(t)
	w.predict(t, w.ana, w.played, 2, 2)

	sheet, err := NewPredictionService(w.db).GetPredictionSheet(w.ana.Id, w.group.Id, intPtr(1), now)
	require.NoError(t, err)
	assert.Equal(t, 1, *sheet.Matchday)
	assert.Nil(t, sheet.Prev)
	assert.Equal(t, 2, *sheet.Next)
	require.Len(t, sheet.Entries, 1)
	assert.True(t, sheet.Entries[0].Locked)
	require.NotNil(t, sheet.Entries[0].Prediction)
	assert.Equal(t, 2, *sheet.Entries[0].Prediction.PredHome)

	sheet, err = NewPredictionService(w.db).GetPredictionSheet(w.ana.Id, w.group.Id, intPtr(42), now)
	require.NoError(t, err)
	assert.Equal(t, 2, *sheet.Matchday, "unknown matchday falls back to the next upcoming one")
	assert.False(t, sheet.Entries[0].Locked)
	assert.Nil(t, sheet.Entries[0].Prediction)
}

func TestSubmitBonusPredictions(t *testing.T) {
	w := newWorld(t)
	service := NewBonusService(w.db)
	before := w.tournament.SeasonStart.Add(-time.Hour)

	picks, err := service.SubmitBonusPredictions(w.ana.Id, w.group.Id, map[string]string{
		"meister":     "  Bayern ",
		"relegation1": "Kiel",
	}, before)
	require.NoError(t, err)
	assert.Equal(t, "Bayern", picks[scoring.BonusChampion])

	_, err = service.SubmitBonusPredictions(w.ana.Id, w.group.Id, map[string]string{
		"relegation2": " kiel",
	}, before)
	assert.ErrorIs(t, err, ErrDuplicateRelegation)

	_, err = service.SubmitBonusPredictions(w.ana.Id, w.group.Id, map[string]string{
		"weltmeister": "Bayern",
	}, before)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, app_error.StatusOf(err))

	stored, err := service.GetBonusPredictions(w.ana.Id, w.group.Id)
	require.NoError(t, err)
	assert.Equal(t, map[scoring.BonusType]string{
		scoring.BonusChampion:    "Bayern",
		scoring.BonusRelegation1: "Kiel",
	}, stored)
}

func TestSubmitBonusPredictionsLockedAtSeasonStart(t *testing.T) {
	w := newWorld(t)
	service := NewBonusService(w.db)

	_, err := service.SubmitBonusPredictions(w.ana.Id, w.group.Id, map[string]string{"meister": "Bayern"}, *w.tournament.SeasonStart)
	assert.ErrorIs(t, err, app_error.ErrBonusLocked)

	locked, err := service.IsLocked(w.group.Id, *w.tournament.SeasonStart)
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestBonusRevealDue(t *testing.T) {
	w := newWorld(t)
	service := NewBonusService(w.db)
	seasonStart := *w.tournament.SeasonStart

	due, err := service.IsRevealDue(w.group.Id, seasonStart.Add(-10*time.Second), 30*time.Second)
	require.NoError(t, err)
	assert.True(t, due)

	due, err = service.IsRevealDue(w.group.Id, seasonStart.Add(-time.Hour), 30*time.Second)
	require.NoError(t, err)
	assert.False(t, due)

	due, err = service.IsRevealDue(w.group.Id, seasonStart, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, due)
}

func TestBonusNeverLocksWithoutSeasonStart(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, w.db.Model(w.tournament).Update("season_start", nil).Error)

	locked, err := NewBonusService(w.db).IsLocked(w.group.Id, now.Add(365*24*time.Hour))
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestGenerateJoinCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateJoinCode()
		require.NoError(t, err)
		assert.Len(t, code, joinCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(joinCodeAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestCreateAndJoinGroup(t *testing.T) {
	w := newWorld(t)
	service := NewGroupService(w.db)

	_, err := service.CreateGroup(w.ben.Id, "   ", w.tournament.Id)
	assert.Equal(t, http.StatusBadRequest, app_error.StatusOf(err))

	_, err = service.CreateGroup(w.ben.Id, "Stammtisch", 4711)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	group, err := service.CreateGroup(w.ben.Id, " Stammtisch ", w.tournament.Id)
	require.NoError(t, err)
	assert.Equal(t, "Stammtisch", group.Name)
	assert.Len(t, group.JoinCode, joinCodeLength)

	joined, err := service.JoinGroup(w.outsider.Id, "  "+strings.ToLower(group.JoinCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, group.Id, joined.Id)
	_, err = service.JoinGroup(w.outsider.Id, group.JoinCode)
	require.NoError(t, err, "joining twice is allowed")

	_, err = service.JoinGroup(w.outsider.Id, "NOPE2345")
	assert.ErrorIs(t, err, app_error.ErrJoinCodeNotFound)

	memberships, err := service.ListMemberships(w.outsider.Id)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.False(t, memberships[0].IsCreator)

	memberships, err = service.ListMemberships(w.ben.Id)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.True(t, memberships[1].IsCreator)
}

func TestResolveActiveGroup(t *testing.T) {
	w := newWorld(t)
	service := NewGroupService(w.db)
	second, err := service.CreateGroup(w.ana.Id, "Family", w.tournament.Id)
	require.NoError(t, err)

	membership, ok, err := service.ResolveActiveGroup(w.ana.Id, &second.Id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, second.Id, membership.GroupId)

	membership, ok, err = service.ResolveActiveGroup(w.ana.Id, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, w.group.Id, membership.GroupId, "first membership is the default")

	membership, ok, err = service.ResolveActiveGroup(w.ben.Id, &second.Id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, w.group.Id, membership.GroupId, "foreign group falls back to own membership")

	membership, ok, err = service.ResolveActiveGroup(w.outsider.Id, &w.group.Id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, membership)
}

func TestGetUserStats(t *testing.T) {
	w := newWorld(t)
	w.predict(t, w.ben, w.played, 2, 1)
	w.predict(t, w.ben, w.upcoming, 0, 0)

	result, err := NewStatsService(w.db).GetUserStats(w.group.Id, w.ben.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ben", result.User.Username)
	assert.Equal(t, 1, result.Stats.Tips.Total(), "only finished matches count")
	assert.Equal(t, 1, result.Stats.Hits[scoring.OutcomeExact])

	_, err = NewStatsService(w.db).GetUserStats(w.group.Id, w.outsider.Id)
	assert.ErrorIs(t, err, app_error.ErrNotMember)
}

func TestApplyResult(t *testing.T) {
	w := newWorld(t)
	service := NewResultService(w.db)
	matches := repository.NewMatchRepository(w.db)

	assert.ErrorIs(t, service.ApplyResult(w.upcoming.Id, intPtr(1), nil, "test"), ErrPartialResult)
	assert.ErrorIs(t, service.ApplyResult(w.upcoming.Id, intPtr(1), intPtr(-2), "test"), ErrNegativeScore)
	assert.ErrorIs(t, service.ApplyResult(9999, intPtr(1), intPtr(0), "test"), gorm.ErrRecordNotFound)

	require.NoError(t, service.ApplyResult(w.upcoming.Id, intPtr(3), intPtr(0), "test"))
	match, err := matches.GetMatchById(w.upcoming.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, *match.HomeScore)
	assert.Equal(t, 0, *match.AwayScore)

	require.NoError(t, service.ApplyResult(w.upcoming.Id, nil, nil, "test"))
	match, err = matches.GetMatchById(w.upcoming.Id)
	require.NoError(t, err)
	assert.Nil(t, match.HomeScore)
	assert.Nil(t, match.AwayScore)
}

func TestTournamentOutcomesFeedBonusScoring(t *testing.T) {
	w := newWorld(t)
	tournaments := NewTournamentService(w.db)
	require.NoError(t, w.db.Create(&repository.BonusPrediction{
		UserId: w.ana.Id, GroupId: w.group.Id, TournamentId: w.tournament.Id, BonusType: "relegation1", Value: "hertha",
	}).Error)
	require.NoError(t, w.db.Create(&repository.BonusPrediction{
		UserId: w.ana.Id, GroupId: w.group.Id, TournamentId: w.tournament.Id, BonusType: "relegation2", Value: "Kiel",
	}).Error)

	tournament, err := tournaments.SetOutcomes(w.tournament.Id, TournamentOutcomes{
		SeasonStart:    w.tournament.SeasonStart,
		Champion:       " Bayern ",
		RelegatedTeams: []string{" Hertha", "", "Kiel "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bayern", tournament.Champion)
	assert.Equal(t, "Hertha, Kiel", tournament.RelegatedTeams)

	table, err := NewMatchdayService(w.db).GetBonusTable(w.group.Id, w.ana.Id, now)
	require.NoError(t, err)
	require.True(t, table.Revealed)
	assert.Equal(t, "ana", table.Rows[0].User.Username)
	assert.Equal(t, 10, table.Rows[0].Points)
}

func TestAddMatch(t *testing.T) {
	w := newWorld(t)
	tournaments := NewTournamentService(w.db)

	_, err := tournaments.AddMatch(w.tournament.Id, MatchCreate{HomeTeam: " ", AwayTeam: "Kiel", Kickoff: now})
	assert.Equal(t, http.StatusBadRequest, app_error.StatusOf(err))
	_, err = tournaments.AddMatch(w.tournament.Id, MatchCreate{HomeTeam: "Mainz", AwayTeam: "Kiel", Kickoff: now, Matchday: intPtr(0)})
	assert.Equal(t, http.StatusBadRequest, app_error.StatusOf(err))

	match, err := tournaments.AddMatch(w.tournament.Id, MatchCreate{HomeTeam: "Mainz ", AwayTeam: "Kiel", Kickoff: now, Matchday: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Mainz", match.HomeTeam)

	matches, err := repository.NewMatchRepository(w.db).GetMatchesForTournament(w.tournament.Id)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestCreateUser(t *testing.T) {
	w := newWorld(t)
	users := NewUserService(w.db)

	_, err := users.CreateUser("  ", false)
	assert.Equal(t, http.StatusBadRequest, app_error.StatusOf(err))

	user, err := users.CreateUser(" carla ", true)
	require.NoError(t, err)
	assert.Equal(t, "carla", user.Username)

	stored, err := users.GetUserById(user.Id)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	_, err = users.GetUserById(4711)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
