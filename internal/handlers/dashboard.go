package handlers

import (
	"net/http"
	"strings"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	api *api.Client
}

func NewDashboardHandler(client *api.Client) *DashboardHandler {
	return &DashboardHandler{api: client}
}

// Overview routes the user to the dashboard variant their role allows. The
// capability table decides; the handler never matches on role names.
func (h *DashboardHandler) Overview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	switch {
	case user.Role.Can(models.CapViewAdminStats):
		h.adminOverview(c)
	case user.Role.Can(models.CapViewAuthorStats):
		h.authorOverview(c)
	default:
		h.readerOverview(c)
	}
}

func (h *DashboardHandler) adminOverview(c *gin.Context) {
	ctx := c.Request.Context()
	client := userClient(c, h.api)

	cacheKey := "stats:admin"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "dashboard/admin.html", data)
			return
		}
	}

	totalPosts, err := client.TotalPosts(ctx)
	if err != nil {
		logrus.WithError(err).Warn("admin stats")
		RenderError(c, http.StatusBadGateway, "Platform stats are unavailable right now.")
		return
	}

	// The remaining widgets degrade to zero values instead of failing the
	// whole dashboard.
	totalUsers, _ := client.TotalUsers(ctx)
	totalComments, _ := client.TotalComments(ctx)
	publishedToday, _ := client.PublishedToday(ctx)
	activities, _ := client.RecentActivities(ctx)
	categories, _ := client.CategoryStats(ctx)

	data := gin.H{
		"Title":          "Admin dashboard",
		"TotalPosts":     totalPosts,
		"TotalUsers":     totalUsers,
		"TotalComments":  totalComments,
		"PublishedToday": publishedToday,
		"Activities":     activities,
		"Categories":     categories,
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	Render(c, http.StatusOK, "dashboard/admin.html", data)
}

func (h *DashboardHandler) authorOverview(c *gin.Context) {
	ctx := c.Request.Context()
	client := userClient(c, h.api)

	totalPosts, err := client.AuthorTotalPosts(ctx)
	if err != nil {
		logrus.WithError(err).Warn("author stats")
	}
	drafts, _ := client.Drafts(ctx)
	recent, _ := client.MyPosts(ctx)
	if len(recent) > 5 {
		recent = recent[:5]
	}

	Render(c, http.StatusOK, "dashboard/author.html", gin.H{
		"Title":      "Author dashboard",
		"TotalPosts": totalPosts,
		"Drafts":     drafts,
		"Recent":     recent,
	})
}

func (h *DashboardHandler) readerOverview(c *gin.Context) {
	profile, err := userClient(c, h.api).MyProfile(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusBadGateway, "Your profile is unavailable right now.")
		return
	}

	Render(c, http.StatusOK, "dashboard/reader.html", gin.H{
		"Title":   "My profile",
		"Profile": profile,
	})
}

func (h *DashboardHandler) ShowSettings(c *gin.Context) {
	profile, err := userClient(c, h.api).MyProfile(c.Request.Context())
	if err != nil {
		RenderError(c, http.StatusBadGateway, "Your profile is unavailable right now.")
		return
	}
	Render(c, http.StatusOK, "dashboard/settings.html", gin.H{
		"Title":   "Settings",
		"Profile": profile,
	})
}

func (h *DashboardHandler) UpdateSettings(c *gin.Context) {
	client := userClient(c, h.api)

	update := api.UserUpdate{
		Name: strings.TrimSpace(c.PostForm("name")),
		Bio:  strings.TrimSpace(c.PostForm("bio")),
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer file.Close()
		url, err := client.UploadImage(c.Request.Context(), header.Filename, file)
		if err != nil {
			Render(c, http.StatusBadRequest, "dashboard/settings.html", gin.H{
				"Title": "Settings", "Profile": middleware.CurrentUser(c),
				"Error": "Avatar upload failed, please try a different image.",
			})
			return
		}
		update.Avatar = url
	}

	profile, err := client.UpdateUser(c.Request.Context(), update)
	if err != nil {
		Render(c, http.StatusBadGateway, "dashboard/settings.html", gin.H{
			"Title": "Settings", "Profile": middleware.CurrentUser(c),
			"Error": backendMessage(err, "Saving failed, please try again."),
		})
		return
	}

	// The cached /auth/me record is stale now.
	session := sessions.Default(c)
	if token, ok := session.Get(middleware.SessionTokenKey).(string); ok {
		middleware.InvalidateSession(token)
	}

	Render(c, http.StatusOK, "dashboard/settings.html", gin.H{
		"Title":   "Settings",
		"Profile": profile,
		"Success": "Profile updated.",
	})
}
