package api

import (
	"context"

	"inkwell/internal/models"
)

// SignupInput is the registration form payload.
type SignupInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Avatar   string      `json:"profileImageUrl,omitempty"`
}

// Signup registers a new account. The returned user carries the JWT.
func (c *Client) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	var user models.User
	err := c.post(ctx, pathSignup, in, &user)
	return user, err
}

// Login authenticates and returns the user with its JWT.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := c.post(ctx, pathLogin, map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	return user, err
}

// Me resolves the token bound to this client to its user record.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.get(ctx, pathMe, &user)
	return user, err
}
