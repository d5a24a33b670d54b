// Package seed imports teams and players into the store from a fantasy football style JSON dump.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/leighmacdonald/roster-tui/internal/encoding"
	"github.com/leighmacdonald/roster-tui/internal/store"
)

var (
	ErrOpenFile      = errors.New("failed to open seed file")
	ErrInvalidSeed   = errors.New("invalid seed data")
	ErrUnknownTeam   = errors.New("player references unknown team")
	ErrUnknownPlayer = errors.New("stats reference unknown player")
)

// Positions maps the numeric element type to its display name.
var Positions = map[int]string{ //nolint:gochecknoglobals
	1: "Goalkeeper",
	2: "Defender",
	3: "Midfielder",
	4: "Forward",
}

type Team struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required"`
	Code int64  `json:"code" validate:"gte=0"`
}

type Player struct {
	ID          int64  `json:"id" validate:"gt=0"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name" validate:"required"`
	ElementType int    `json:"element_type" validate:"oneof=1 2 3 4"`
	Team        int64  `json:"team" validate:"gte=0"`
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// Stats is one season of a player's match statistics.
type Stats struct {
	PlayerID int64   `json:"player_id" validate:"gt=0"`
	Season   string  `json:"season" validate:"required"`
	Minutes  int64   `json:"minutes" validate:"gte=0"`
	Goals    int64   `json:"goals" validate:"gte=0"`
	Assists  int64   `json:"assists" validate:"gte=0"`
	XG       float64 `json:"xg" validate:"gte=0"`
	XA       float64 `json:"xa" validate:"gte=0"`
}

type Data struct {
	Teams   []Team   `json:"teams" validate:"dive"`
	Players []Player `json:"players" validate:"dive"`
	Stats   []Stats  `json:"stats" validate:"dive"`
}

type writer interface {
	Import(ctx context.Context, teams []store.Team, players []store.Player, stats []store.PlayerStats) error
}

// Parse decodes and validates a seed document.
func Parse(ctx context.Context, reader io.Reader) (Data, error) {
	data, errDecode := encoding.UnmarshalJSON[Data](reader)
	if errDecode != nil {
		return Data{}, errors.Join(errDecode, ErrInvalidSeed)
	}

	if err := validator.New().StructCtx(ctx, data); err != nil {
		return Data{}, errors.Join(err, ErrInvalidSeed)
	}

	known := make(map[int64]bool, len(data.Teams))
	for _, team := range data.Teams {
		known[team.ID] = true
	}

	for _, player := range data.Players {
		if player.Team != 0 && !known[player.Team] {
			return Data{}, errors.Join(fmt.Errorf("%w: player %d team %d", ErrUnknownTeam, player.ID, player.Team), ErrInvalidSeed)
		}
	}

	players := make(map[int64]bool, len(data.Players))
	for _, player := range data.Players {
		players[player.ID] = true
	}

	for _, row := range data.Stats {
		if !players[row.PlayerID] {
			return Data{}, errors.Join(fmt.Errorf("%w: player %d season %s", ErrUnknownPlayer, row.PlayerID, row.Season), ErrInvalidSeed)
		}
	}

	return data, nil
}

// Import writes the seed data through the store in one transaction.
func Import(ctx context.Context, repo writer, data Data) error {
	teams := make([]store.Team, len(data.Teams))
	for idx, team := range data.Teams {
		teams[idx] = store.Team{ID: team.ID, Name: team.Name, Code: team.Code}
	}

	players := make([]store.Player, len(data.Players))
	for idx, player := range data.Players {
		players[idx] = store.Player{
			ID:       player.ID,
			FullName: player.FullName(),
			Position: Positions[player.ElementType],
			TeamID:   sql.NullInt64{Int64: player.Team, Valid: player.Team != 0},
		}
	}

	stats := make([]store.PlayerStats, len(data.Stats))
	for idx, row := range data.Stats {
		stats[idx] = store.PlayerStats(row)
	}

	if err := repo.Import(ctx, teams, players, stats); err != nil {
		return err
	}

	slog.Info("Imported roster",
		slog.String("teams", humanize.Comma(int64(len(teams)))),
		slog.String("players", humanize.Comma(int64(len(players)))),
		slog.String("stats", humanize.Comma(int64(len(stats)))))

	return nil
}

// ImportFile parses and imports the seed file at path.
func ImportFile(ctx context.Context, repo writer, path string) error {
	file, errOpen := os.Open(path)
	if errOpen != nil {
		return errors.Join(errOpen, ErrOpenFile)
	}
	defer file.Close()

	data, errParse := Parse(ctx, file)
	if errParse != nil {
		return errParse
	}

	return Import(ctx, repo, data)
}
