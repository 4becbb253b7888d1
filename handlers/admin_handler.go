package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/services"
)

// AdminHandler exposes the single dispatch endpoint the admin dashboard
// posts to: {"type": "...", "payload": {...}}. Every action re-checks the
// admin guard at the router level and flows through the same services as the
// resource routes, so both entry points enforce identical rules.
type AdminHandler struct {
	profileService services.ProfileService
	rosterService  services.RosterService
	matchService   services.MatchService
}

func NewAdminHandler(
	profileService services.ProfileService,
	rosterService services.RosterService,
	matchService services.MatchService,
) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		rosterService:  rosterService,
		matchService:   matchService,
	}
}

type adminAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (h *AdminHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var action adminAction
	if err := readJSON(w, r, &action); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.dispatch(r, action)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"ok": true}
	if result != nil {
		response["result"] = result
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) dispatch(r *http.Request, action adminAction) (interface{}, error) {
	ctx := r.Context()

	switch action.Type {
	case "setProfileStatus":
		var p struct {
			ProfileID int                  `json:"profile_id"`
			Role      models.ProfileRole   `json:"role"`
			Status    models.ProfileStatus `json:"status"`
		}
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.profileService.SetStatus(ctx, p.ProfileID, p.Role, p.Status)

	case "createTeam":
		var p services.CreateTeamInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.rosterService.CreateTeam(ctx, p)

	case "deleteTeam":
		id, err := payloadID(action.Payload, "team_id")
		if err != nil {
			return nil, err
		}
		return nil, h.rosterService.DeleteTeam(ctx, id)

	case "createGroup":
		var p services.CreateGroupInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.rosterService.CreateGroup(ctx, p)

	case "deleteGroup":
		id, err := payloadID(action.Payload, "group_id")
		if err != nil {
			return nil, err
		}
		return nil, h.rosterService.DeleteGroup(ctx, id)

	case "assignTeamGroup":
		var p services.AssignTeamGroupInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.rosterService.AssignTeamGroup(ctx, p)

	case "addTeamPlayer":
		var p services.TeamPlayerInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.rosterService.AddTeamPlayer(ctx, p)

	case "removeTeamPlayer":
		var p services.TeamPlayerInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.rosterService.RemoveTeamPlayer(ctx, p)

	case "createPlayerWithStats":
		var p services.CreatePlayerInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.rosterService.CreatePlayer(ctx, p)

	case "deletePlayer":
		id, err := payloadID(action.Payload, "player_id")
		if err != nil {
			return nil, err
		}
		return nil, h.rosterService.DeletePlayer(ctx, id)

	case "updatePlayerStats":
		var p models.PlayerStats
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.rosterService.UpdatePlayerStats(ctx, &p)

	case "createMatch":
		var p services.CreateMatchInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.matchService.CreateMatch(ctx, p)

	case "updateMatch":
		var p struct {
			MatchID int `json:"match_id"`
			services.UpdateMatchInput
		}
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.matchService.UpdateMatch(ctx, p.MatchID, p.UpdateMatchInput)

	case "deleteMatch":
		id, err := payloadID(action.Payload, "match_id")
		if err != nil {
			return nil, err
		}
		return nil, h.matchService.DeleteMatch(ctx, id)

	case "addGoal":
		var p services.AddGoalInput
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return h.matchService.AddGoal(ctx, p)

	case "deleteGoal":
		var p struct {
			MatchID int `json:"match_id"`
			GoalID  int `json:"goal_id"`
		}
		if err := unmarshalPayload(action.Payload, &p); err != nil {
			return nil, err
		}
		return nil, h.matchService.DeleteGoal(ctx, p.MatchID, p.GoalID)

	default:
		return nil, fmt.Errorf("%w: unknown action type %q", services.ErrValidationFailed, action.Type)
	}
}

func unmarshalPayload(payload json.RawMessage, dst interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: missing payload", services.ErrValidationFailed)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %v", services.ErrValidationFailed, err)
	}
	return nil
}

func payloadID(payload json.RawMessage, field string) (int, error) {
	var m map[string]int
	if err := unmarshalPayload(payload, &m); err != nil {
		return 0, err
	}
	id, ok := m[field]
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: missing %s", services.ErrValidationFailed, field)
	}
	return id, nil
}
