package api

import "github.com/leighmacdonald/roster-tui/internal/store"

// PlayerDTO is the wire form of a player. Clients only depend on id and name.
type PlayerDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	TeamID   *int64 `json:"team_id"`
}

func EncodePlayer(p store.Player) PlayerDTO {
	dto := PlayerDTO{
		ID:       p.ID,
		Name:     p.FullName,
		Position: p.Position,
	}

	if p.TeamID.Valid {
		teamID := p.TeamID.Int64
		dto.TeamID = &teamID
	}

	return dto
}

// EncodePlayers always returns a non-nil slice so an empty roster encodes as [].
func EncodePlayers(players []store.Player) []PlayerDTO {
	dtos := make([]PlayerDTO, len(players))
	for idx, p := range players {
		dtos[idx] = EncodePlayer(p)
	}

	return dtos
}

type TeamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code int64  `json:"code"`
}

func EncodeTeams(teams []store.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for idx, team := range teams {
		dtos[idx] = TeamDTO{ID: team.ID, Name: team.Name, Code: team.Code}
	}

	return dtos
}

type PlayerStatsDTO struct {
	PlayerID int64   `json:"player_id"`
	Season   string  `json:"season"`
	Minutes  int64   `json:"minutes"`
	Goals    int64   `json:"goals"`
	Assists  int64   `json:"assists"`
	XG       float64 `json:"xg"`
	XA       float64 `json:"xa"`
}

func EncodePlayerStats(stats []store.PlayerStats) []PlayerStatsDTO {
	dtos := make([]PlayerStatsDTO, len(stats))
	for idx, row := range stats {
		dtos[idx] = PlayerStatsDTO(row)
	}

	return dtos
}
