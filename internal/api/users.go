package api

import (
	"context"

	"inkwell/internal/models"
)

// UserUpdate is the profile settings payload.
type UserUpdate struct {
	Name   string `json:"name,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AllUsers lists every account (admin only, enforced by the backend).
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.get(ctx, pathAllUsers, &users)
	return users, err
}

// MyProfile fetches the caller's profile.
func (c *Client) MyProfile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.get(ctx, pathMyProfile, &user)
	return user, err
}

// UpdateUser saves profile changes and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, in UserUpdate) (models.User, error) {
	var user models.User
	err := c.put(ctx, pathUpdateUser, in, &user)
	return user, err
}

// DeleteUser removes an account: the caller's own, or any account when the
// caller is an admin.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, pathDeleteUser, map[string]string{"userId": id})
}
