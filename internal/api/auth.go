package api

import (
	"context"
	"net/http"

	"footmatch-app/internal/model"
)

func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	return request[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/login", req, false)
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	return request[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/register", req, false)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error) {
	body := model.RefreshTokenRequest{RefreshToken: refreshToken}
	return request[model.AuthResponse](ctx, c, http.MethodPost, "/api/auth/refresh", body, false)
}
