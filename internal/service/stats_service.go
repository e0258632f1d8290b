package service

import (
	"context"

	"github.com/aferrandez/liga-veteranos/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const statsLimit = 100

// StatsService reads the denormalized player counters the ledger maintains.
// Because the counters sit on the player row, these are plain indexed reads
// with no aggregation over the event tables.
type StatsService struct {
	db      *sqlx.DB
	players *store.PlayerStore
	teams   *store.TeamStore
}

func NewStatsService(db *sqlx.DB, players *store.PlayerStore, teams *store.TeamStore) *StatsService {
	return &StatsService{db: db, players: players, teams: teams}
}

type TopScorer struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamID     uuid.UUID `json:"team_id"`
	TeamName   string    `json:"team_name"`
	Goals      int       `json:"goals"`
}

type PlayerCards struct {
	PlayerID    uuid.UUID `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	TeamID      uuid.UUID `json:"team_id"`
	TeamName    string    `json:"team_name"`
	YellowCards int       `json:"yellow_cards"`
	RedCards    int       `json:"red_cards"`
}

// TopScorers lists scorers best first, optionally limited to one division.
func (s *StatsService) TopScorers(ctx context.Context, division *int) ([]TopScorer, error) {
	teamIDs, names, err := s.teamFilter(ctx, division)
	if err != nil {
		return nil, err
	}

	players, err := s.players.GetTopScorers(ctx, teamIDs, statsLimit)
	if err != nil {
		return nil, err
	}

	scorers := make([]TopScorer, 0, len(players))
	for _, p := range players {
		scorers = append(scorers, TopScorer{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TeamID:     p.TeamID,
			TeamName:   names[p.TeamID],
			Goals:      p.GoalsScored,
		})
	}
	return scorers, nil
}

// CardStatistics lists carded players, reds weighing heavier than yellows.
func (s *StatsService) CardStatistics(ctx context.Context, division *int) ([]PlayerCards, error) {
	teamIDs, names, err := s.teamFilter(ctx, division)
	if err != nil {
		return nil, err
	}

	players, err := s.players.GetCardedPlayers(ctx, teamIDs, statsLimit)
	if err != nil {
		return nil, err
	}

	cards := make([]PlayerCards, 0, len(players))
	for _, p := range players {
		cards = append(cards, PlayerCards{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			TeamID:      p.TeamID,
			TeamName:    names[p.TeamID],
			YellowCards: p.YellowCards,
			RedCards:    p.RedCards,
		})
	}
	return cards, nil
}

// teamFilter returns the team ids to restrict the query to (nil when no
// division filter applies) and a name lookup for all known teams.
func (s *StatsService) teamFilter(ctx context.Context, division *int) ([]string, map[uuid.UUID]string, error) {
	teams, err := s.teams.GetTeams(ctx)
	if err != nil {
		return nil, nil, err
	}

	names := make(map[uuid.UUID]string, len(teams))
	var teamIDs []string
	for _, t := range teams {
		names[t.ID] = t.Name
		if division != nil && t.Division == *division {
			teamIDs = append(teamIDs, t.ID.String())
		}
	}

	if division != nil && len(teamIDs) == 0 {
		// A division with no teams filters everything out.
		teamIDs = []string{uuid.Nil.String()}
	}
	return teamIDs, names, nil
}
