package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/thread"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PostHandler struct {
	api      *api.Client
	comments *CommentHandler
}

func NewPostHandler(client *api.Client, comments *CommentHandler) *PostHandler {
	return &PostHandler{api: client, comments: comments}
}

// Home lists published posts with optional category filter and search.
func (h *PostHandler) Home(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	category := c.Query("category")
	search := c.Query("q")

	cacheKey := fmt.Sprintf("posts:list:%s:%s:%d", category, search, page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "post/list.html", data)
			return
		}
	}

	posts, err := h.api.ListPosts(c.Request.Context(), api.PostQuery{
		Category: category,
		Search:   search,
		Page:     page,
	})
	if err != nil {
		logrus.WithError(err).Warn("list posts")
		RenderError(c, http.StatusBadGateway, "The article feed is unavailable right now.")
		return
	}

	categories, err := h.api.CategoryStats(c.Request.Context())
	if err != nil {
		// The sidebar degrades to no category list.
		categories = nil
	}

	renderData := gin.H{
		"Title":      "Latest articles",
		"Posts":      posts,
		"Categories": categories,
		"Category":   category,
		"Query":      search,
		"Page":       page,
	}
	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "post/list.html", renderData)
}

// Detail shows one post with its rendered body and comment thread.
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")
	mode := thread.ParseSort(c.Query("sort"))

	post, err := h.api.GetPost(c.Request.Context(), pid)
	if err != nil {
		if api.IsStatus(err, http.StatusNotFound) {
			RenderError(c, http.StatusNotFound, "This article does not exist.")
			return
		}
		RenderError(c, http.StatusBadGateway, "This article is unavailable right now.")
		return
	}

	view, err := h.comments.loadView(c, post.ID, mode)
	if err != nil {
		logrus.WithError(err).WithField("post", post.ID).Warn("load thread")
		// The article is still readable without its comments.
		view = thread.View{Sort: mode}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":        post.Title,
		"Post":         post,
		"PostContent":  utils.RenderMarkdown(post.Content),
		"View":         view,
		"PostID":       post.ID,
		"Sort":         string(mode),
		"CommentCount": view.Len(),
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "post/create.html", gin.H{
		"Title":      "Write an article",
		"Categories": h.categories(c),
	})
}

// validatePostForm mirrors the backend's rules so most mistakes are caught
// before a round-trip.
func validatePostForm(title, content, category string) string {
	switch {
	case utf8.RuneCountInString(title) < 5:
		return "Title must be at least 5 characters long"
	case utf8.RuneCountInString(title) > 100:
		return "Title must not exceed 100 characters"
	case utf8.RuneCountInString(content) < 50:
		return "Content must be at least 50 characters long"
	case strings.TrimSpace(category) == "":
		return "Category is required"
	}
	return ""
}

func (h *PostHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	category := strings.TrimSpace(c.PostForm("category"))
	isDraft := c.PostForm("is_draft") == "on"

	fields := gin.H{
		"Title":      "Write an article",
		"FormTitle":  title,
		"Content":    content,
		"Category":   category,
		"IsDraft":    isDraft,
		"Categories": h.categories(c),
	}

	if msg := validatePostForm(title, content, category); msg != "" {
		fields["Error"] = msg
		Render(c, http.StatusBadRequest, "post/create.html", fields)
		return
	}

	client := userClient(c, h.api)

	imageURL, err := h.uploadCover(c)
	if err != nil {
		fields["Error"] = "Cover upload failed, please try a different image."
		Render(c, http.StatusBadRequest, "post/create.html", fields)
		return
	}

	post, err := client.CreatePost(c.Request.Context(), api.PostInput{
		Title:    title,
		Content:  content,
		Category: category,
		Image:    imageURL,
		IsDraft:  isDraft,
	})
	if err != nil {
		logrus.WithError(err).Warn("create post")
		fields["Error"] = backendMessage(err, "Publishing failed, please try again.")
		Render(c, http.StatusBadGateway, "post/create.html", fields)
		return
	}

	h.invalidateLists()

	if post.IsDraft {
		c.Redirect(http.StatusFound, "/dashboard/posts?tab=drafts")
		return
	}
	c.Redirect(http.StatusFound, "/p/"+post.ID)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.ownedPost(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":      "Edit article",
		"Post":       post,
		"Categories": h.categories(c),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.ownedPost(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	category := strings.TrimSpace(c.PostForm("category"))
	isDraft := c.PostForm("is_draft") == "on"

	if msg := validatePostForm(title, content, category); msg != "" {
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Title": "Edit article", "Post": post, "Error": msg, "Categories": h.categories(c),
		})
		return
	}

	imageURL, err := h.uploadCover(c)
	if err != nil {
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Title": "Edit article", "Post": post,
			"Error": "Cover upload failed, please try a different image.", "Categories": h.categories(c),
		})
		return
	}
	if imageURL == "" {
		imageURL = post.Image
	}

	updated, err := userClient(c, h.api).UpdatePost(c.Request.Context(), post.ID, api.PostInput{
		Title:    title,
		Content:  content,
		Category: category,
		Image:    imageURL,
		IsDraft:  isDraft,
	})
	if err != nil {
		Render(c, http.StatusBadGateway, "post/edit.html", gin.H{
			"Title": "Edit article", "Post": post,
			"Error": backendMessage(err, "Saving failed, please try again."), "Categories": h.categories(c),
		})
		return
	}

	h.invalidateLists()
	c.Redirect(http.StatusFound, "/p/"+updated.ID)
}

// Delete removes a post (HTMX).
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.ownedPost(c)
	if !ok {
		return
	}

	if err := userClient(c, h.api).DeletePost(c.Request.Context(), post.ID); err != nil {
		logrus.WithError(err).WithField("post", post.ID).Warn("delete post")
		c.Status(http.StatusBadGateway)
		return
	}

	h.invalidateLists()
	utils.GetCache().Delete(commentCacheKey(post.ID))

	if strings.Contains(c.GetHeader("HX-Current-URL"), "/p/") {
		HtmxRedirect(c, "/")
		return
	}
	c.Status(http.StatusOK)
}

// MyPosts lists the author's published posts or drafts depending on ?tab=.
func (h *PostHandler) MyPosts(c *gin.Context) {
	tab := c.DefaultQuery("tab", "published")
	client := userClient(c, h.api)

	var (
		posts []models.Post
		err   error
	)
	if tab == "drafts" {
		posts, err = client.Drafts(c.Request.Context())
	} else {
		tab = "published"
		posts, err = client.MyPosts(c.Request.Context())
	}
	if err != nil {
		RenderError(c, http.StatusBadGateway, "Your posts are unavailable right now.")
		return
	}

	Render(c, http.StatusOK, "post/my.html", gin.H{
		"Title": "My articles",
		"Posts": posts,
		"Tab":   tab,
	})
}

// ownedPost loads the route's post and enforces that the current user may
// modify it: the owner, or anyone with the moderation capability.
func (h *PostHandler) ownedPost(c *gin.Context) (models.Post, bool) {
	user := middleware.CurrentUser(c)
	pid := c.Param("pid")

	post, err := h.api.GetPost(c.Request.Context(), pid)
	if err != nil {
		RenderError(c, http.StatusNotFound, "This article does not exist.")
		return models.Post{}, false
	}
	if post.Author.ID != user.ID && !user.Role.Can(models.CapModerateComments) {
		RenderError(c, http.StatusForbidden, "You cannot modify this article.")
		return models.Post{}, false
	}
	return post, true
}

// uploadCover forwards an optional multipart cover image to the backend and
// returns its public URL ("" when no file was attached).
func (h *PostHandler) uploadCover(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	defer file.Close()

	return userClient(c, h.api).UploadImage(c.Request.Context(), header.Filename, file)
}

func (h *PostHandler) categories(c *gin.Context) []models.CategoryStat {
	if cached := utils.GetCache().Get("stats:categories"); cached != nil {
		if cats, ok := cached.([]models.CategoryStat); ok {
			return cats
		}
	}
	cats, err := h.api.CategoryStats(c.Request.Context())
	if err != nil {
		return nil
	}
	utils.GetCache().Set("stats:categories", cats, 5*time.Minute)
	return cats
}

func (h *PostHandler) invalidateLists() {
	// The first page is the hot one; deeper pages age out within a minute.
	utils.GetCache().Delete("posts:list:::1")
}
