package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
)

// Prediction point values: exact score beats correct outcome beats nothing.
const (
	pointsExactScore     = 3
	pointsCorrectOutcome = 1
)

type SubmitPredictionInput struct {
	MatchID  int `json:"match_id"`
	HomePred int `json:"home_pred"`
	AwayPred int `json:"away_pred"`
}

type PredictionService interface {
	// Submit records a fan's one-time guess for a match that has not
	// finished. There is no update or delete: the first guess stands.
	Submit(ctx context.Context, userID int, input SubmitPredictionInput) (*models.Prediction, error)
	ListMine(ctx context.Context, userID int) ([]models.Prediction, error)
	Leaderboard(ctx context.Context) ([]models.PredictionStanding, error)
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
}

func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
	}
}

func (s *predictionService) Submit(ctx context.Context, userID int, input SubmitPredictionInput) (*models.Prediction, error) {
	if input.HomePred < 0 || input.AwayPred < 0 {
		return nil, ErrMatchScoreNegative
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", input.MatchID, err)
	}
	if match.Status == models.MatchStatusFinished {
		return nil, ErrPredictionMatchClosed
	}

	prediction := &models.Prediction{
		MatchID:  input.MatchID,
		UserID:   userID,
		HomePred: input.HomePred,
		AwayPred: input.AwayPred,
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPredictionConflict):
			return nil, ErrPredictionConflict
		case errors.Is(err, repositories.ErrPredictionMatchInvalid):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to submit prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) ListMine(ctx context.Context, userID int) ([]models.Prediction, error) {
	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}

// Leaderboard scores every prediction against its finished match and ranks
// fans by total points, name breaking ties deterministically.
func (s *predictionService) Leaderboard(ctx context.Context) ([]models.PredictionStanding, error) {
	outcomes, err := s.predictionRepo.ListOutcomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction outcomes: %w", err)
	}

	byUser := make(map[int]*models.PredictionStanding)
	for _, o := range outcomes {
		row, ok := byUser[o.UserID]
		if !ok {
			row = &models.PredictionStanding{UserID: o.UserID, UserName: o.UserName}
			byUser[o.UserID] = row
		}
		row.Played++
		points := PredictionPoints(o.HomePred, o.AwayPred, o.HomeScore, o.AwayScore)
		row.Points += points
		switch points {
		case pointsExactScore:
			row.Exact++
		case pointsCorrectOutcome:
			row.Outcomes++
		}
	}

	board := make([]models.PredictionStanding, 0, len(byUser))
	for _, row := range byUser {
		board = append(board, *row)
	}
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Points != board[j].Points {
			return board[i].Points > board[j].Points
		}
		if board[i].Exact != board[j].Exact {
			return board[i].Exact > board[j].Exact
		}
		return board[i].UserName < board[j].UserName
	})
	return board, nil
}

// PredictionPoints awards 3 for the exact score, 1 for the correct outcome
// (winner or draw), 0 otherwise.
func PredictionPoints(homePred, awayPred, homeScore, awayScore int) int {
	if homePred == homeScore && awayPred == awayScore {
		return pointsExactScore
	}
	predOutcome := outcomeSign(homePred, awayPred)
	realOutcome := outcomeSign(homeScore, awayScore)
	if predOutcome == realOutcome {
		return pointsCorrectOutcome
	}
	return 0
}

func outcomeSign(home, away int) int {
	switch {
	case home > away:
		return 1
	case home < away:
		return -1
	default:
		return 0
	}
}
