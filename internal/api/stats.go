package api

import (
	"context"

	"inkwell/internal/models"
)

func (c *Client) statCount(ctx context.Context, path string) (int, error) {
	var out models.StatCount
	err := c.get(ctx, path, &out)
	return out.Total, err
}

// TotalPosts is the platform-wide published post count (admin dashboard).
func (c *Client) TotalPosts(ctx context.Context) (int, error) {
	return c.statCount(ctx, pathTotalPosts)
}

func (c *Client) TotalUsers(ctx context.Context) (int, error) {
	return c.statCount(ctx, pathTotalUsers)
}

func (c *Client) TotalComments(ctx context.Context) (int, error) {
	return c.statCount(ctx, pathTotalComments)
}

// PublishedToday counts posts published since midnight.
func (c *Client) PublishedToday(ctx context.Context) (int, error) {
	return c.statCount(ctx, pathPublishedToday)
}

// AuthorTotalPosts counts the calling author's own posts.
func (c *Client) AuthorTotalPosts(ctx context.Context) (int, error) {
	return c.statCount(ctx, pathAuthorTotalPosts)
}

// RecentActivities is the admin dashboard activity feed, newest first.
func (c *Client) RecentActivities(ctx context.Context) ([]models.RecentActivity, error) {
	var out []models.RecentActivity
	err := c.get(ctx, pathRecentActivities, &out)
	return out, err
}

// CategoryStats is the per-topic post count.
func (c *Client) CategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	var out []models.CategoryStat
	err := c.get(ctx, pathCategoryStats, &out)
	return out, err
}
