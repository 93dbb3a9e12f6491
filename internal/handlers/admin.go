package handlers

import (
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler covers user management and comment moderation. Routes are
// gated by RequireCapability; the backend re-checks the admin role anyway.
type AdminHandler struct {
	api *api.Client
}

func NewAdminHandler(client *api.Client) *AdminHandler {
	return &AdminHandler{api: client}
}

// Users lists every account for the management table.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := userClient(c, h.api).AllUsers(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusBadGateway, "The user list is unavailable right now.")
		return
	}
	Render(c, http.StatusOK, "admin/users.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

// DeleteUser removes an account (HTMX row delete).
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == middleware.CurrentUser(c).ID {
		c.String(http.StatusBadRequest, "You cannot delete your own account here.")
		return
	}

	if err := userClient(c, h.api).DeleteUser(c.Request.Context(), id); err != nil {
		logrus.WithError(err).WithField("user", id).Warn("delete user")
		c.Status(http.StatusBadGateway)
		return
	}
	c.Status(http.StatusOK)
}

// Comments is the moderation queue over every comment on the platform.
func (h *AdminHandler) Comments(c *gin.Context) {
	comments, err := userClient(c, h.api).AllComments(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusBadGateway, "The moderation queue is unavailable right now.")
		return
	}
	Render(c, http.StatusOK, "admin/comments.html", gin.H{
		"Title":    "Moderation",
		"Comments": comments,
	})
}
