package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"footmatch-app/internal/model"
)

// MatchFilters narrows the match list; zero fields are not sent.
type MatchFilters struct {
	Status   model.MatchStatus
	Location string
	DateFrom *time.Time
	Page     *int
	Size     *int
}

func (f MatchFilters) Query() string {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		params.Set("location", loc)
	}
	if f.DateFrom != nil {
		params.Set("dateFrom", f.DateFrom.UTC().Format(time.RFC3339))
	}
	if f.Page != nil {
		params.Set("page", strconv.Itoa(*f.Page))
	}
	if f.Size != nil {
		params.Set("size", strconv.Itoa(*f.Size))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

func matchPath(id string, rest ...string) string {
	parts := append([]string{"/api/matches", url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

func (c *Client) ListMatches(ctx context.Context, filters MatchFilters) (model.Page[model.Match], error) {
	return request[model.Page[model.Match]](ctx, c, http.MethodGet, "/api/matches"+filters.Query(), nil, false)
}

func (c *Client) GetMatch(ctx context.Context, id string) (model.Match, error) {
	return request[model.Match](ctx, c, http.MethodGet, matchPath(id), nil, false)
}

func (c *Client) CreateMatch(ctx context.Context, req model.MatchRequest) (model.Match, error) {
	return request[model.Match](ctx, c, http.MethodPost, "/api/matches", req, true)
}

func (c *Client) UpdateMatch(ctx context.Context, id string, req model.MatchRequest) (model.Match, error) {
	return request[model.Match](ctx, c, http.MethodPut, matchPath(id), req, true)
}

func (c *Client) DeleteMatch(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, matchPath(id), nil, true, nil)
}

func (c *Client) JoinMatch(ctx context.Context, id string) (model.Participant, error) {
	return request[model.Participant](ctx, c, http.MethodPost, matchPath(id, "join"), nil, true)
}

func (c *Client) LeaveMatch(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, matchPath(id, "leave"), nil, true, nil)
}

func (c *Client) Participants(ctx context.Context, id string) ([]model.Participant, error) {
	return request[[]model.Participant](ctx, c, http.MethodGet, matchPath(id, "participants"), nil, false)
}

func (c *Client) UpdateParticipantStatus(ctx context.Context, matchID, playerID string, status model.ParticipantStatus) (model.Participant, error) {
	body := model.UpdateParticipantStatusRequest{Status: status}
	return request[model.Participant](ctx, c, http.MethodPut, matchPath(matchID, "participants", url.PathEscape(playerID)), body, true)
}
