package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
)

type CreateTeamInput struct {
	Name string `json:"name"`
}

type CreateGroupInput struct {
	Name string `json:"name"`
}

type AssignTeamGroupInput struct {
	TeamID  int  `json:"team_id"`
	GroupID *int `json:"group_id"`
}

type CreatePlayerInput struct {
	FullName        string              `json:"full_name"`
	DisplayName     *string             `json:"display_name"`
	University      *string             `json:"university"`
	Position        string              `json:"position"`
	LinkedProfileID *int                `json:"linked_profile_id"`
	Stats           *models.PlayerStats `json:"stats"`
}

type TeamPlayerInput struct {
	TeamID   int `json:"team_id"`
	PlayerID int `json:"player_id"`
}

// RosterService covers teams, groups, the two assignment relations, players
// and their editable stat counters.
type RosterService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error

	CreateGroup(ctx context.Context, input CreateGroupInput) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	DeleteGroup(ctx context.Context, id int) error

	AssignTeamGroup(ctx context.Context, input AssignTeamGroupInput) error

	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	ListTeamPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error

	AddTeamPlayer(ctx context.Context, input TeamPlayerInput) error
	RemoveTeamPlayer(ctx context.Context, input TeamPlayerInput) error

	UpdatePlayerStats(ctx context.Context, stats *models.PlayerStats) error
	RecomputePlayerStats(ctx context.Context) error
}

type rosterService struct {
	teamRepo   repositories.TeamRepository
	groupRepo  repositories.GroupRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewRosterService(
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) RosterService {
	return &rosterService{
		teamRepo:   teamRepo,
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *rosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *rosterService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *rosterService) DeleteTeam(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	}
	return err
}

func (s *rosterService) CreateGroup(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}

	group := &models.Group{Name: name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repositories.ErrGroupNameConflict) {
			return nil, ErrGroupNameConflict
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *rosterService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *rosterService) DeleteGroup(ctx context.Context, id int) error {
	err := s.groupRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrGroupInUse):
		return ErrGroupInUse
	}
	return err
}

func (s *rosterService) AssignTeamGroup(ctx context.Context, input AssignTeamGroupInput) error {
	if input.TeamID <= 0 {
		return ErrValidationFailed
	}
	err := s.teamRepo.AssignGroup(ctx, input.TeamID, input.GroupID)
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	}
	return err
}

func (s *rosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		FullName:        fullName,
		DisplayName:     input.DisplayName,
		University:      input.University,
		Position:        strings.TrimSpace(input.Position),
		LinkedProfileID: input.LinkedProfileID,
	}
	if err := s.playerRepo.CreateWithStats(ctx, player, input.Stats); err != nil {
		if errors.Is(err, repositories.ErrPlayerProfileConflict) {
			return nil, ErrProfileLinkConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// ListPlayers returns the roster ordered by position class (GK first, then
// defence through attack), then by presented name.
func (s *rosterService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	sortPlayers(players)
	return players, nil
}

func (s *rosterService) ListTeamPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	team := make([]*models.Player, 0)
	for _, p := range players {
		if p.TeamID != nil && *p.TeamID == teamID {
			team = append(team, p)
		}
	}
	sortPlayers(team)
	return team, nil
}

func sortPlayers(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		ci, cj := models.ClassifyPosition(players[i].Position), models.ClassifyPosition(players[j].Position)
		if ci != cj {
			return ci < cj
		}
		return players[i].PresentedName() < players[j].PresentedName()
	})
}

func (s *rosterService) DeletePlayer(ctx context.Context, id int) error {
	err := s.playerRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func (s *rosterService) AddTeamPlayer(ctx context.Context, input TeamPlayerInput) error {
	if input.TeamID <= 0 || input.PlayerID <= 0 {
		return ErrValidationFailed
	}
	err := s.playerRepo.AssignTeam(ctx, input.TeamID, input.PlayerID)
	if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
		return ErrValidationFailed
	}
	return err
}

func (s *rosterService) RemoveTeamPlayer(ctx context.Context, input TeamPlayerInput) error {
	err := s.playerRepo.RemoveFromTeam(ctx, input.TeamID, input.PlayerID)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

func (s *rosterService) UpdatePlayerStats(ctx context.Context, stats *models.PlayerStats) error {
	if stats.PlayerID <= 0 {
		return ErrValidationFailed
	}
	if stats.MatchesPlayed < 0 || stats.Goals < 0 || stats.Assists < 0 || stats.MOTM < 0 {
		return ErrValidationFailed
	}
	err := s.playerRepo.UpdateStats(ctx, stats)
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}

// RecomputePlayerStats refreshes the counters from the goal ledger.
// Best-effort: the scheduler calls this on a ticker and a failure is logged,
// never propagated as fatal.
func (s *rosterService) RecomputePlayerStats(ctx context.Context) error {
	if err := s.playerRepo.RecomputeStatsFromGoals(ctx); err != nil {
		s.logger.Warn("player stats recompute failed", slog.Any("error", err))
		return err
	}
	return nil
}
