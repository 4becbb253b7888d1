package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
	"github.com/karimdoss-design/campustad/standings"
)

type CreateMatchInput struct {
	Stage         models.MatchStage `json:"stage"`
	GroupID       *int              `json:"group_id"`
	HomeTeamID    int               `json:"home_team_id"`
	AwayTeamID    int               `json:"away_team_id"`
	StartTime     *time.Time        `json:"start_time"`
	KnockoutRound *string           `json:"knockout_round"`
	KnockoutOrder *int              `json:"knockout_order"`
	KnockoutLabel *string           `json:"knockout_label"`
}

// UpdateMatchInput is a partial update: nil means "leave as is".
type UpdateMatchInput struct {
	StartTime     *time.Time          `json:"start_time"`
	Status        *models.MatchStatus `json:"status"`
	HomeScore     *int                `json:"home_score"`
	AwayScore     *int                `json:"away_score"`
	KnockoutRound *string             `json:"knockout_round"`
	KnockoutOrder *int                `json:"knockout_order"`
	KnockoutLabel *string             `json:"knockout_label"`
	MOTMPlayerID  *int                `json:"motm_player_id"`
}

type AddGoalInput struct {
	MatchID        int  `json:"match_id"`
	ScoringTeamID  int  `json:"scoring_team_id"`
	ScorerPlayerID int  `json:"scorer_player_id"`
	AssistPlayerID *int `json:"assist_player_id"`
	Minute         *int `json:"minute"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error

	AddGoal(ctx context.Context, input AddGoalInput) (*models.GoalEvent, error)
	ListGoals(ctx context.Context, matchID int) ([]models.GoalEvent, error)
	DeleteGoal(ctx context.Context, matchID, goalID int) error
}

type matchService struct {
	matchRepo  repositories.MatchRepository
	goalRepo   repositories.GoalRepository
	playerRepo repositories.PlayerRepository
	hub        *standings.Hub
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	goalRepo repositories.GoalRepository,
	playerRepo repositories.PlayerRepository,
	hub *standings.Hub,
) MatchService {
	return &matchService{
		matchRepo:  matchRepo,
		goalRepo:   goalRepo,
		playerRepo: playerRepo,
		hub:        hub,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID <= 0 || input.AwayTeamID <= 0 {
		return nil, ErrMatchTeamsRequired
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchSameTeam
	}

	match := &models.Match{
		Stage:      input.Stage,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		StartTime:  input.StartTime,
		Status:     models.MatchStatusScheduled,
	}

	switch input.Stage {
	case models.StageGroup:
		if input.GroupID == nil {
			return nil, ErrMatchGroupRequired
		}
		match.GroupID = input.GroupID
	case models.StageKnockout:
		match.KnockoutRound = input.KnockoutRound
		match.KnockoutLabel = input.KnockoutLabel
		// Order is coerced to >= 1, defaulting to 1 when absent.
		order := 1
		if input.KnockoutOrder != nil && *input.KnockoutOrder >= 1 {
			order = *input.KnockoutOrder
		}
		match.KnockoutOrder = &order
	default:
		return nil, ErrValidationFailed
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, s.mapMatchRepoError(err)
	}

	s.hub.BroadcastLive(standings.EventMatchUpdated, map[string]int{"match_id": match.ID})
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// UpdateMatch merges the partial input onto the stored row and writes it
// back whole. Last write wins.
func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapMatchRepoError(err)
	}

	if input.StartTime != nil {
		match.StartTime = input.StartTime
	}
	if input.Status != nil {
		switch *input.Status {
		case models.MatchStatusScheduled, models.MatchStatusFinished:
			match.Status = *input.Status
		default:
			return nil, ErrValidationFailed
		}
	}
	if input.HomeScore != nil {
		if *input.HomeScore < 0 {
			return nil, ErrMatchScoreNegative
		}
		match.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		if *input.AwayScore < 0 {
			return nil, ErrMatchScoreNegative
		}
		match.AwayScore = *input.AwayScore
	}
	if input.KnockoutRound != nil {
		match.KnockoutRound = input.KnockoutRound
	}
	if input.KnockoutLabel != nil {
		match.KnockoutLabel = input.KnockoutLabel
	}
	if input.KnockoutOrder != nil {
		order := *input.KnockoutOrder
		if order < 1 {
			order = 1
		}
		match.KnockoutOrder = &order
	}
	if input.MOTMPlayerID != nil {
		if err := s.validateMOTM(ctx, match, *input.MOTMPlayerID); err != nil {
			return nil, err
		}
		match.MOTMPlayerID = input.MOTMPlayerID
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, s.mapMatchRepoError(err)
	}

	s.hub.BroadcastLive(standings.EventMatchUpdated, map[string]int{"match_id": match.ID})
	return match, nil
}

// validateMOTM requires the award to go to a player rostered on one of the
// two participating teams.
func (s *matchService) validateMOTM(ctx context.Context, match *models.Match, playerID int) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to load player %d: %w", playerID, err)
	}
	if player.TeamID == nil || !match.InvolvesTeam(*player.TeamID) {
		return ErrMOTMNotInMatch
	}
	return nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.DeleteWithGoals(ctx, id); err != nil {
		return s.mapMatchRepoError(err)
	}
	s.hub.BroadcastLive(standings.EventMatchUpdated, map[string]int{"match_id": id})
	return nil
}

func (s *matchService) AddGoal(ctx context.Context, input AddGoalInput) (*models.GoalEvent, error) {
	if input.ScorerPlayerID <= 0 {
		return nil, ErrGoalScorerRequired
	}
	if input.AssistPlayerID != nil && *input.AssistPlayerID == input.ScorerPlayerID {
		return nil, ErrGoalAssistIsScorer
	}
	if input.Minute != nil && *input.Minute < 0 {
		return nil, ErrGoalMinuteNegative
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return nil, s.mapMatchRepoError(err)
	}
	if !match.InvolvesTeam(input.ScoringTeamID) {
		return nil, ErrGoalTeamNotInMatch
	}

	goal := &models.GoalEvent{
		MatchID:        input.MatchID,
		ScoringTeamID:  input.ScoringTeamID,
		ScorerPlayerID: input.ScorerPlayerID,
		AssistPlayerID: input.AssistPlayerID,
		Minute:         input.Minute,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGoalMatchInvalid):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrGoalPlayerInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to add goal: %w", err)
	}

	s.hub.BroadcastLive(standings.EventGoalAdded, map[string]int{"match_id": goal.MatchID, "goal_id": goal.ID})
	return goal, nil
}

func (s *matchService) ListGoals(ctx context.Context, matchID int) ([]models.GoalEvent, error) {
	goals, err := s.goalRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals for match %d: %w", matchID, err)
	}
	return goals, nil
}

func (s *matchService) DeleteGoal(ctx context.Context, matchID, goalID int) error {
	if err := s.goalRepo.Delete(ctx, goalID); err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("failed to delete goal %d: %w", goalID, err)
	}
	s.hub.BroadcastLive(standings.EventGoalDeleted, map[string]int{"match_id": matchID, "goal_id": goalID})
	return nil
}

func (s *matchService) mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchGroupInvalid):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrMatchMOTMInvalid):
		return ErrPlayerNotFound
	default:
		return err
	}
}
