// ABOUTME: Authentication endpoints of the sales-management API
// ABOUTME: Login, token refresh, logout, and current-user lookup

package client

import (
	"context"
	"fmt"
)

// loginRequest is the POST /users/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials to the backend. On success the server sets the
// HTTP-only access-token cookie on the jar and returns the token expiry.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenInfo, error) {
	var tok TokenInfo
	if err := c.post(ctx, "/users/login", loginRequest{Email: email, Password: password}, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// RefreshToken renews the access token using the session cookie and
// returns the new expiry.
func (c *Client) RefreshToken(ctx context.Context) (*TokenInfo, error) {
	var tok TokenInfo
	if err := c.get(ctx, "/users/refresh-token", nil, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Logout invalidates the server-side session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.get(ctx, "/users/logout", nil, nil)
}

// Me returns the currently authenticated user with its roles.
func (c *Client) Me(ctx context.Context) (*Usuario, error) {
	var u Usuario
	if err := c.get(ctx, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMe updates the current user's profile.
func (c *Client) UpdateMe(ctx context.Context, update map[string]interface{}) (*Usuario, error) {
	var u Usuario
	if err := c.put(ctx, "/users/me", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsuarios returns all users.
func (c *Client) ListUsuarios(ctx context.Context) ([]Usuario, error) {
	var list []Usuario
	if err := c.get(ctx, "/users", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUsuario returns a single user by ID.
func (c *Client) GetUsuario(ctx context.Context, id int) (*Usuario, error) {
	var u Usuario
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUsuario updates a user by ID.
func (c *Client) UpdateUsuario(ctx context.Context, id int, update map[string]interface{}) (*Usuario, error) {
	var u Usuario
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
