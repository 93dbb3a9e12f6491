package handlers

import (
	"net/http"

	"inkwell/internal/api"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'. It copies
// obj first: handlers cache their gin.H payloads, and the per-request keys
// must not leak into a shared map.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := make(gin.H, len(obj)+2)
	for k, v := range obj {
		data[k] = v
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		data["CurrentUser"] = user
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// HTMX Redirect helper
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK) // HTMX handles the redirect on client side via header
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// userClient binds the shared backend client to the request's session token
// so backend calls run as the logged-in user.
func userClient(c *gin.Context, base *api.Client) *api.Client {
	if token, exists := c.Get(middleware.TokenKey); exists {
		return base.WithToken(token.(string))
	}
	return base
}

// backendMessage extracts a user-presentable message from a backend error.
func backendMessage(err error, fallback string) string {
	if be, ok := err.(*api.Error); ok && be.Message != "" {
		return be.Message
	}
	return fallback
}
