// Package api serves the players collection over http for local development.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/store"
)

const requestTimeout = 10 * time.Second

var ErrServe = errors.New("failed to serve api")

type repository interface {
	Players(ctx context.Context) ([]store.Player, error)
	Teams(ctx context.Context) ([]store.Team, error)
	PlayerStats(ctx context.Context, playerID int64) ([]store.PlayerStats, error)
}

// Server is the echo application exposing the roster.
type Server struct {
	echo       *echo.Echo
	repository repository
	logger     *slog.Logger
}

func New(repository repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	server := &Server{
		echo:       echo.New(),
		repository: repository,
		logger:     logger,
	}

	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.echo.Use(middleware.Recover())
	server.echo.Use(middleware.ContextTimeout(requestTimeout))
	server.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogError:     true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogUserAgent: true,
		LogValuesFunc: func(_ echo.Context, values middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("remote", values.RemoteIP),
				slog.String("method", values.Method),
				slog.String("uri", values.URI),
				slog.Int("status", values.Status),
				slog.String("latency", values.Latency.Truncate(time.Millisecond).String()),
				slog.String("agent", values.UserAgent),
			}

			level := slog.LevelInfo
			if values.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", values.Error.Error()))
			}

			logger.LogAttrs(context.Background(), level, "request", attrs...)

			return nil
		},
	}))

	server.echo.GET("/api/health", server.handleHealth)
	server.echo.GET(config.PlayersEndpoint, server.handleGetPlayers)
	server.echo.GET("/api/teams", server.handleGetTeams)
	server.echo.GET("/api/stats/:player_id", server.handleGetPlayerStats)

	return server
}

// Handler exposes the router, mostly for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on address until Shutdown is called.
func (s *Server) Start(address string) error {
	s.logger.Info("Starting api", slog.String("address", address))

	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(err, ErrServe)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPlayers(c echo.Context) error {
	players, err := s.repository.Players(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, EncodePlayers(players))
}

func (s *Server) handleGetTeams(c echo.Context) error {
	teams, err := s.repository.Teams(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, EncodeTeams(teams))
}

func (s *Server) handleGetPlayerStats(c echo.Context) error {
	params := struct {
		PlayerID int64 `param:"player_id" validate:"gt=0"`
	}{}
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(fmt.Errorf("failed to bind request parameters: %w", err))
	}

	if err := validator.New().StructCtx(c.Request().Context(), params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(fmt.Errorf("invalid parameters: %w", err))
	}

	stats, err := s.repository.PlayerStats(c.Request().Context(), params.PlayerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusOK, EncodePlayerStats(stats))
}
