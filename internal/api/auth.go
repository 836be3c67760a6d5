package api

import (
	"context"
	"net/http"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair holds the issued access/refresh tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Tokens TokenPair  `json:"tokens"`
	User   model.User `json:"user"`
}

// Login authenticates against the users API and returns the token pair and
// profile. Credential handling and hashing are entirely the backend's job.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, c.config.AuthBaseURL+"/auth/login/", nil,
		loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
