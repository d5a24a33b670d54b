// Package players implements the client for the remote players collection endpoint.
package players

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/leighmacdonald/roster-tui/internal/encoding"
	"github.com/leighmacdonald/roster-tui/internal/player"
)

var (
	ErrFetchPlayers = errors.New("failed to fetch players")
	// ErrResponseNotOK is the single generic error used for every non-2xx response.
	ErrResponseNotOK = errors.New("network response was not ok")
)

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// New creates a client reading the players collection from playersURL.
func New(httpClient HTTPDoer, playersURL string) *Client {
	return &Client{httpClient: httpClient, playersURL: playersURL}
}

type Client struct {
	httpClient HTTPDoer
	playersURL string
}

// Players issues a single GET for the collection. There are no retries, every failure is
// terminal for the call and is returned wrapped in ErrFetchPlayers.
func (c *Client) Players(ctx context.Context) (player.Players, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, c.playersURL, nil)
	if errReq != nil {
		return nil, errors.Join(errReq, ErrFetchPlayers)
	}

	req.Header.Set("Accept", "application/json")

	resp, errResp := c.httpClient.Do(req)
	if errResp != nil {
		return nil, errors.Join(errResp, ErrFetchPlayers)
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close response body", slog.String("error", err.Error()))
		}
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Join(fmt.Errorf("%w: status %d", ErrResponseNotOK, resp.StatusCode), ErrFetchPlayers)
	}

	collection, errUnmarshal := encoding.UnmarshalJSON[player.Players](resp.Body)
	if errUnmarshal != nil {
		return nil, errors.Join(errUnmarshal, ErrFetchPlayers)
	}

	if collection == nil {
		// A literal null body is not a collection.
		return nil, errors.Join(encoding.ErrDecodeJSON, ErrFetchPlayers)
	}

	return collection, nil
}
