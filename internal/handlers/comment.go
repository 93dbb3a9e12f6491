package handlers

import (
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/thread"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	api *api.Client
}

func NewCommentHandler(client *api.Client) *CommentHandler {
	return &CommentHandler{api: client}
}

func commentCacheKey(postID string) string {
	return fmt.Sprintf("comments:post:%s", postID)
}

// flattenComments converts backend comment documents into the thread
// package's flat input. The backend returns reply documents twice: as
// standalone entries in the flat list and nested under their parent's
// replies array. The walk unfolds the nesting and dedupes by id so Build
// sees each comment exactly once.
func flattenComments(list []models.Comment, currentUserID string) []thread.Comment {
	var out []thread.Comment
	seen := make(map[string]bool)
	var walk func(items []models.Comment, parentID string)
	walk = func(items []models.Comment, parentID string) {
		for _, m := range items {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			pid := parentID
			if m.ParentID != nil && *m.ParentID != "" {
				pid = *m.ParentID
			}
			liked := false
			for _, id := range m.LikedBy {
				if id == currentUserID {
					liked = true
					break
				}
			}
			out = append(out, thread.Comment{
				ID:      m.ID,
				Content: m.Content,
				PostID:  m.Post.ID,
				Author: thread.Author{
					ID:     m.Author.ID,
					Name:   m.Author.Name,
					Avatar: m.Author.Avatar,
					Role:   string(m.Author.Role),
				},
				ParentID:  pid,
				CreatedAt: m.CreatedAt,
				LikeCount: m.LikeCount,
				Liked:     liked,
			})
			walk(m.Replies, m.ID)
		}
	}
	walk(list, "")
	return out
}

// loadView fetches (or re-uses the cached) flat comment list for a post and
// builds the thread view for the current user.
func (h *CommentHandler) loadView(c *gin.Context, postID string, mode thread.SortMode) (thread.View, error) {
	var raw []models.Comment

	if cached := utils.GetCache().Get(commentCacheKey(postID)); cached != nil {
		if list, ok := cached.([]models.Comment); ok {
			raw = list
		}
	}
	if raw == nil {
		list, err := userClient(c, h.api).PostComments(c.Request.Context(), postID)
		if err != nil {
			return thread.View{}, err
		}
		raw = list
		utils.GetCache().Set(commentCacheKey(postID), list, time.Minute)
	}

	me := ""
	if user := middleware.CurrentUser(c); user != nil {
		me = user.ID
	}
	return thread.Build(flattenComments(raw, me), mode), nil
}

// List renders the comment thread fragment for a post, honoring ?sort=.
func (h *CommentHandler) List(c *gin.Context) {
	postID := c.Param("pid")
	mode := thread.ParseSort(c.Query("sort"))

	view, err := h.loadView(c, postID, mode)
	if err != nil {
		logrus.WithError(err).WithField("post", postID).Warn("load comments")
		c.String(http.StatusBadGateway, "Comments are unavailable right now.")
		return
	}

	Render(c, http.StatusOK, "components/comments.html", gin.H{
		"View":   view,
		"PostID": postID,
		"Sort":   string(mode),
	})
}

// Create posts a new comment or reply. The thread view goes through the
// optimistic provisional -> confirm/rollback cycle around the backend call,
// so the rendered fragment always reflects the final reconciled state.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := c.Param("pid")
	content := c.PostForm("content")
	parentID := c.PostForm("parent_id")
	mode := thread.ParseSort(c.PostForm("sort"))

	view, err := h.loadView(c, postID, mode)
	if err != nil {
		c.String(http.StatusBadGateway, "Comments are unavailable right now.")
		return
	}

	draft := thread.Draft{Content: content, PostID: postID, ParentID: parentID}
	tempID := "tmp-" + uuid.NewString()
	author := thread.Author{ID: user.ID, Name: user.Name, Avatar: user.Avatar, Role: string(user.Role)}

	pending, err := thread.AddProvisional(view, draft, tempID, time.Now(), author)
	switch err {
	case nil:
	case thread.ErrInvalidContent:
		c.String(http.StatusBadRequest, "Comments must be 1 to %d characters.", thread.MaxContentLength)
		return
	case thread.ErrInvalidParent:
		// The comment being replied to was deleted while the form was open.
		c.String(http.StatusConflict, "That comment no longer exists.")
		return
	default:
		c.String(http.StatusInternalServerError, "Could not add comment.")
		return
	}

	client := userClient(c, h.api)
	var server models.Comment
	if parentID == "" {
		server, err = client.CreateComment(c.Request.Context(), postID, content)
	} else {
		server, err = client.ReplyComment(c.Request.Context(), postID, parentID, content)
	}

	var final thread.View
	if err != nil {
		logrus.WithError(err).WithField("post", postID).Warn("create comment")
		final, _ = thread.Rollback(pending, tempID)
		Render(c, http.StatusOK, "components/comments.html", gin.H{
			"View":   final,
			"PostID": postID,
			"Sort":   string(mode),
			"Error":  backendMessage(err, "Your comment could not be posted. Please try again."),
		})
		return
	}

	flat := flattenComments([]models.Comment{server}, user.ID)
	if len(flat) > 0 {
		confirmed := flat[0]
		confirmed.ParentID = parentID
		final, err = thread.Confirm(pending, tempID, confirmed)
		if err != nil {
			// Already rolled back elsewhere; treat as a no-op and re-render.
			final = pending
		}
	} else {
		final = pending
	}

	utils.GetCache().Delete(commentCacheKey(postID))

	Render(c, http.StatusOK, "components/comments.html", gin.H{
		"View":   final,
		"PostID": postID,
		"Sort":   string(mode),
	})
}

// Like toggles the current user's like. Responds with the plain counter so
// the button can swap it in place.
func (h *CommentHandler) Like(c *gin.Context) {
	postID := c.Request.FormValue("post_id")
	commentID := c.Param("cid")

	view, err := h.loadView(c, postID, thread.SortNewest)
	if err != nil {
		c.String(http.StatusBadGateway, "unavailable")
		return
	}

	optimistic, err := thread.ToggleLike(view, commentID)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	count, err := userClient(c, h.api).LikeComment(c.Request.Context(), commentID)
	if err != nil {
		// Revert: the local flip never happened as far as the UI is concerned.
		before, _ := view.Find(commentID)
		logrus.WithError(err).WithField("comment", commentID).Warn("toggle like")
		c.String(http.StatusBadGateway, fmt.Sprintf("%d", before.LikeCount))
		return
	}

	utils.GetCache().Delete(commentCacheKey(postID))

	// The backend count is authoritative; it normally matches the local
	// toggle unless another session raced us.
	if after, ok := optimistic.Find(commentID); ok && count != after.LikeCount {
		logrus.WithFields(logrus.Fields{"comment": commentID, "local": after.LikeCount, "server": count}).
			Debug("like count drifted from optimistic value")
	}
	c.String(http.StatusOK, fmt.Sprintf("%d", count))
}

// Edit replaces the content of the caller's own comment and re-renders the
// thread fragment.
func (h *CommentHandler) Edit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := c.Request.FormValue("post_id")
	commentID := c.Param("cid")
	content := c.PostForm("content")
	mode := thread.ParseSort(c.PostForm("sort"))

	if err := thread.ValidateContent(content); err != nil {
		c.String(http.StatusBadRequest, "Comments must be 1 to %d characters.", thread.MaxContentLength)
		return
	}

	view, err := h.loadView(c, postID, mode)
	if err != nil {
		c.String(http.StatusBadGateway, "Comments are unavailable right now.")
		return
	}
	target, ok := view.Find(commentID)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	if target.Author.ID != user.ID {
		c.Status(http.StatusForbidden)
		return
	}

	if _, err := userClient(c, h.api).EditComment(c.Request.Context(), commentID, content); err != nil {
		logrus.WithError(err).WithField("comment", commentID).Warn("edit comment")
		c.String(http.StatusBadGateway, "Saving failed, please try again.")
		return
	}

	utils.GetCache().Delete(commentCacheKey(postID))

	view, err = h.loadView(c, postID, mode)
	if err != nil {
		c.String(http.StatusBadGateway, "Comments are unavailable right now.")
		return
	}
	Render(c, http.StatusOK, "components/comments.html", gin.H{
		"View":   view,
		"PostID": postID,
		"Sort":   string(mode),
	})
}

// Delete removes a comment. Owner/admin enforcement is the backend's; the
// local view just mirrors the outcome (cascade included) on success.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := c.Request.FormValue("post_id")
	commentID := c.Param("cid")

	view, err := h.loadView(c, postID, thread.SortNewest)
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	target, ok := view.Find(commentID)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	if target.Author.ID != user.ID && !user.Role.Can(models.CapModerateComments) {
		c.Status(http.StatusForbidden)
		return
	}

	if err := userClient(c, h.api).DeleteComment(c.Request.Context(), commentID); err != nil {
		logrus.WithError(err).WithField("comment", commentID).Warn("delete comment")
		c.Status(http.StatusBadGateway)
		return
	}

	utils.GetCache().Delete(commentCacheKey(postID))
	c.Status(http.StatusOK) // empty body removes the element via hx-target
}
