package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	api *api.Client
}

func NewAuthHandler(client *api.Client) *AuthHandler {
	return &AuthHandler{api: client}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || !strings.Contains(email, "@") {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "Please enter a valid email address", "Email": email})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Error": "Password must be at least 6 characters", "Email": email})
		return
	}

	user, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Info("login rejected")
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": backendMessage(err, "Invalid email or password"),
			"Email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionTokenKey, user.Token)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	role := models.Role(c.PostForm("role"))

	fields := gin.H{"Name": name, "Email": email, "Role": string(role)}

	if name == "" {
		fields["Error"] = "Name is required"
		Render(c, http.StatusBadRequest, "auth/register.html", fields)
		return
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["Error"] = "Please enter a valid email address"
		Render(c, http.StatusBadRequest, "auth/register.html", fields)
		return
	}
	if len(password) < 6 {
		fields["Error"] = "Password must be at least 6 characters"
		Render(c, http.StatusBadRequest, "auth/register.html", fields)
		return
	}
	// Admin accounts are provisioned by other admins, never via signup.
	if !role.Valid() || role == models.RoleAdmin {
		fields["Error"] = "Please pick a role"
		Render(c, http.StatusBadRequest, "auth/register.html", fields)
		return
	}

	user, err := h.api.Signup(c.Request.Context(), api.SignupInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		fields["Error"] = backendMessage(err, "Registration failed, please try again")
		Render(c, http.StatusConflict, "auth/register.html", fields)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionTokenKey, user.Token)
	session.Save()

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if token, ok := session.Get(middleware.SessionTokenKey).(string); ok {
		middleware.InvalidateSession(token)
	}
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
