package services

import (
	"context"
	"fmt"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
	"github.com/karimdoss-design/campustad/standings"
	"golang.org/x/sync/errgroup"
)

// StandingsService fetches a fresh snapshot on every call and hands it to the
// pure engine. Fetch failures are reported upstream; the engine itself never
// fails.
type StandingsService interface {
	GroupTables(ctx context.Context) ([]standings.GroupTable, error)
	KnockoutRounds(ctx context.Context) ([]standings.KnockoutRound, error)
	Leaderboard(ctx context.Context, kind standings.LeaderboardKind, limit int) ([]standings.LeaderboardEntry, error)
}

type standingsService struct {
	teamRepo   repositories.TeamRepository
	groupRepo  repositories.GroupRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewStandingsService(
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		teamRepo:   teamRepo,
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

const defaultLeaderboardLimit = 10

func (s *standingsService) GroupTables(ctx context.Context) ([]standings.GroupTable, error) {
	var (
		groups      []*models.Group
		teams       []*models.Team
		assignments []models.TeamGroupAssignment
		matches     []models.Match
	)

	stage := models.StageGroup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		groups, err = s.groupRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.teamRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = s.teamRepo.ListGroupAssignments(gctx)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.matchRepo.List(gctx, models.MatchFilter{Stage: &stage})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings snapshot: %w", err)
	}

	return standings.ComputeGroupTables(deref(groups), deref(teams), assignments, matches), nil
}

func (s *standingsService) KnockoutRounds(ctx context.Context) ([]standings.KnockoutRound, error) {
	stage := models.StageKnockout
	matches, err := s.matchRepo.List(ctx, models.MatchFilter{Stage: &stage})
	if err != nil {
		return nil, fmt.Errorf("failed to load knockout matches: %w", err)
	}
	return standings.ComputeKnockoutRounds(matches), nil
}

func (s *standingsService) Leaderboard(ctx context.Context, kind standings.LeaderboardKind, limit int) ([]standings.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	var (
		players []*models.Player
		stats   []models.PlayerStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		players, err = s.playerRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.playerRepo.ListStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard snapshot: %w", err)
	}

	return standings.ComputeLeaderboard(deref(players), stats, kind, limit), nil
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}
