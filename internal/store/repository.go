package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

var (
	ErrQuery = errors.New("failed to query database")
	ErrSave  = errors.New("failed to save records")
)

type Team struct {
	ID   int64
	Name string
	Code int64
}

type Player struct {
	ID       int64
	FullName string
	Position string
	TeamID   sql.NullInt64
}

// PlayerStats is one season of match statistics for a player.
type PlayerStats struct {
	PlayerID int64
	Season   string
	Minutes  int64
	Goals    int64
	Assists  int64
	XG       float64
	XA       float64
}

// Repository reads and writes teams, players and their stats.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Players returns every player ordered by id.
func (r *Repository) Players(ctx context.Context) ([]Player, error) {
	query := sq.
		Select("player_id", "full_name", "position", "current_team_id").
		From("players").
		OrderBy("player_id")

	return collect(ctx, r.db, query, func(rows *sql.Rows) (Player, error) {
		var player Player
		err := rows.Scan(&player.ID, &player.FullName, &player.Position, &player.TeamID)

		return player, err
	})
}

// Teams returns every team ordered by id.
func (r *Repository) Teams(ctx context.Context) ([]Team, error) {
	query := sq.
		Select("team_id", "team_name", "COALESCE(fpl_team_code, 0)").
		From("teams").
		OrderBy("team_id")

	return collect(ctx, r.db, query, func(rows *sql.Rows) (Team, error) {
		var team Team
		err := rows.Scan(&team.ID, &team.Name, &team.Code)

		return team, err
	})
}

// PlayerStats returns the stats rows of a single player, oldest season first. An unknown
// player yields an empty slice.
func (r *Repository) PlayerStats(ctx context.Context, playerID int64) ([]PlayerStats, error) {
	query := sq.
		Select("player_id", "season", "minutes", "goals", "assists", "xg", "xa").
		From("player_stats").
		Where(sq.Eq{"player_id": playerID}).
		OrderBy("season")

	return collect(ctx, r.db, query, func(rows *sql.Rows) (PlayerStats, error) {
		var stats PlayerStats
		err := rows.Scan(&stats.PlayerID, &stats.Season, &stats.Minutes, &stats.Goals, &stats.Assists,
			&stats.XG, &stats.XA)

		return stats, err
	})
}

// Import upserts teams, then players, then stats in a single transaction. Nothing is written
// when any record fails.
func (r *Repository) Import(ctx context.Context, teams []Team, players []Player, stats []PlayerStats) error {
	tx, errTx := r.db.BeginTx(ctx, nil)
	if errTx != nil {
		return errors.Join(errTx, ErrSave)
	}

	if err := importTx(ctx, tx, teams, players, stats); err != nil {
		return errors.Join(err, tx.Rollback(), ErrSave)
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(err, ErrSave)
	}

	return nil
}

func importTx(ctx context.Context, tx *sql.Tx, teams []Team, players []Player, stats []PlayerStats) error {
	var inserts []sq.InsertBuilder

	for _, team := range teams {
		inserts = append(inserts, sq.
			Insert("teams").
			Columns("team_id", "team_name", "fpl_team_code").
			Values(team.ID, team.Name, team.Code).
			Suffix("ON CONFLICT (team_id) DO UPDATE SET team_name = excluded.team_name, " +
				"fpl_team_code = excluded.fpl_team_code"))
	}

	for _, player := range players {
		inserts = append(inserts, sq.
			Insert("players").
			Columns("player_id", "full_name", "position", "current_team_id").
			Values(player.ID, player.FullName, player.Position, player.TeamID).
			Suffix("ON CONFLICT (player_id) DO UPDATE SET full_name = excluded.full_name, " +
				"position = excluded.position, current_team_id = excluded.current_team_id"))
	}

	for _, row := range stats {
		inserts = append(inserts, sq.
			Insert("player_stats").
			Columns("player_id", "season", "minutes", "goals", "assists", "xg", "xa").
			Values(row.PlayerID, row.Season, row.Minutes, row.Goals, row.Assists, row.XG, row.XA).
			Suffix("ON CONFLICT (player_id, season) DO UPDATE SET minutes = excluded.minutes, " +
				"goals = excluded.goals, assists = excluded.assists, xg = excluded.xg, xa = excluded.xa"))
	}

	for _, insert := range inserts {
		query, args, errSQL := insert.ToSql()
		if errSQL != nil {
			return errSQL
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return nil
}

func collect[T any](ctx context.Context, db *sql.DB, builder sq.SelectBuilder, scan func(rows *sql.Rows) (T, error)) ([]T, error) {
	query, args, errSQL := builder.ToSql()
	if errSQL != nil {
		return nil, errors.Join(errSQL, ErrQuery)
	}

	rows, errQuery := db.QueryContext(ctx, query, args...)
	if errQuery != nil {
		return nil, errors.Join(errQuery, ErrQuery)
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		value, err := scan(rows)
		if err != nil {
			return nil, errors.Join(err, ErrQuery)
		}

		results = append(results, value)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return results, nil
}
