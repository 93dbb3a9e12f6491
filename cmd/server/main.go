package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, reading env vars from system")
	}

	if os.Getenv("GIN_MODE") == gin.ReleaseMode {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Backend REST client
	backend := api.NewFromEnv()

	// Warm the LLM service so misconfiguration shows up at startup
	if !services.GetLLMService().Enabled() {
		logrus.Info("LLM helpers disabled, set LLM_BASE_URL and LLM_TOKEN to enable")
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inkwell_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser(backend))

	// Handlers
	authHandler := handlers.NewAuthHandler(backend)
	commentHandler := handlers.NewCommentHandler(backend)
	postHandler := handlers.NewPostHandler(backend, commentHandler)
	aiHandler := handlers.NewAIHandler(backend, services.GetLLMService())
	dashboardHandler := handlers.NewDashboardHandler(backend)
	adminHandler := handlers.NewAdminHandler(backend)

	// Public Routes
	r.GET("/", postHandler.Home)
	r.GET("/p/:pid", postHandler.Detail)
	r.GET("/p/:pid/comments", commentHandler.List)
	r.GET("/p/:pid/summary", aiHandler.Summary)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/p/:pid/comments", commentHandler.Create)
		authorized.POST("/comment/:cid/like", commentHandler.Like)
		authorized.POST("/comment/:cid/edit", commentHandler.Edit)
		authorized.DELETE("/comment/:cid", commentHandler.Delete)

		authorized.GET("/submit", middleware.RequireCapability(models.CapCreatePost), postHandler.ShowCreate)
		authorized.POST("/submit", middleware.RequireCapability(models.CapCreatePost), postHandler.Create)
		authorized.GET("/p/:pid/edit", postHandler.ShowEdit)
		authorized.POST("/p/:pid/edit", postHandler.Update)
		authorized.DELETE("/p/:pid", postHandler.Delete)

		authorized.GET("/ai/ideas", middleware.RequireCapability(models.CapUseAIHelpers), aiHandler.Ideas)
	}

	// Dashboard Routes
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		dashboard.GET("", dashboardHandler.Overview)
		dashboard.GET("/posts", middleware.RequireCapability(models.CapCreatePost), postHandler.MyPosts)
		dashboard.GET("/settings", dashboardHandler.ShowSettings)
		dashboard.POST("/settings", dashboardHandler.UpdateSettings)
	}

	// Admin Routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/users", middleware.RequireCapability(models.CapManageUsers), adminHandler.Users)
		admin.DELETE("/users/:id", middleware.RequireCapability(models.CapManageUsers), adminHandler.DeleteUser)
		admin.GET("/comments", middleware.RequireCapability(models.CapModerateComments), adminHandler.Comments)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	components, err := filepath.Glob(templatesDir + "/components/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, components...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			seconds := int(time.Since(timeVal).Seconds())
			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"initials": utils.Initials,
		"excerpt": func(s string) string {
			return utils.Excerpt(s, 160)
		},
		"can": func(u *models.User, cap string) bool {
			return u != nil && u.Role.Can(models.Capability(cap))
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Posts
	r.AddFromFilesFuncs("post/list.html", funcMap, assemble(templatesDir+"/views/post/list.html")...)
	r.AddFromFilesFuncs("post/detail.html", funcMap, assemble(templatesDir+"/views/post/detail.html")...)
	r.AddFromFilesFuncs("post/create.html", funcMap, assemble(templatesDir+"/views/post/create.html")...)
	r.AddFromFilesFuncs("post/edit.html", funcMap, assemble(templatesDir+"/views/post/edit.html")...)
	r.AddFromFilesFuncs("post/my.html", funcMap, assemble(templatesDir+"/views/post/my.html")...)

	// Dashboard
	r.AddFromFilesFuncs("dashboard/admin.html", funcMap, assemble(templatesDir+"/views/dashboard/admin.html")...)
	r.AddFromFilesFuncs("dashboard/author.html", funcMap, assemble(templatesDir+"/views/dashboard/author.html")...)
	r.AddFromFilesFuncs("dashboard/reader.html", funcMap, assemble(templatesDir+"/views/dashboard/reader.html")...)
	r.AddFromFilesFuncs("dashboard/settings.html", funcMap, assemble(templatesDir+"/views/dashboard/settings.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/users.html", funcMap, assemble(templatesDir+"/views/admin/users.html")...)
	r.AddFromFilesFuncs("admin/comments.html", funcMap, assemble(templatesDir+"/views/admin/comments.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	// HTMX fragments rendered without the layout
	r.AddFromFilesFuncs("components/comments.html", funcMap, templatesDir+"/components/comments.html")
	r.AddFromFilesFuncs("components/ideas.html", funcMap, templatesDir+"/components/ideas.html")
	r.AddFromFilesFuncs("components/summary.html", funcMap, templatesDir+"/components/summary.html")

	return r
}
