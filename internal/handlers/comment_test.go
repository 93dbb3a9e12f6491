package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/thread"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records which comment endpoints were hit and serves a canned
// comment list per post.
type fakeBackend struct {
	comments  map[string][]models.Comment
	likeCount int
	liked     []string
	deleted   []string
}

func (f *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/comment/get-post-comments/", func(w http.ResponseWriter, r *http.Request) {
		pid := r.URL.Path[len("/comment/get-post-comments/"):]
		json.NewEncoder(w).Encode(f.comments[pid])
	})
	mux.HandleFunc("/comment/like", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.liked = append(f.liked, body["id"])
		json.NewEncoder(w).Encode(map[string]int{"likeCount": f.likeCount})
	})
	mux.HandleFunc("/comment/delete", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.deleted = append(f.deleted, body["id"])
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newCommentRouter(backendURL string, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommentHandler(api.New(backendURL))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
			c.Set(middleware.TokenKey, "test-token")
		}
	})
	r.POST("/comment/:cid/like", h.Like)
	r.DELETE("/comment/:cid", h.Delete)
	return r
}

func backendComment(id, postID, authorID string) models.Comment {
	return models.Comment{
		ID:        id,
		Content:   "hello there, this is a comment",
		Post:      models.CommentPostRef{ID: postID},
		Author:    models.CommentAuthor{ID: authorID, Name: "Someone"},
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFlattenCommentsDedupesNestedReplies(t *testing.T) {
	// The backend sends every reply twice: nested under its parent and as a
	// standalone entry in the flat list. Each one must survive only once.
	parentID := "c-parent"
	reply := backendComment("c-reply", "p-1", "u2")
	reply.ParentID = &parentID

	parent := backendComment(parentID, "p-1", "u1")
	parent.Replies = []models.Comment{reply}

	flat := flattenComments([]models.Comment{parent, reply}, "")
	require.Len(t, flat, 2)

	view := thread.Build(flat, thread.SortNewest)
	assert.Equal(t, 2, view.Len())
	require.Len(t, view.TopLevel, 1)
	require.Len(t, view.TopLevel[0].Replies, 1)
	assert.Equal(t, "c-reply", view.TopLevel[0].Replies[0].ID)
}

func TestLikeRespondsWithServerCount(t *testing.T) {
	backend := &fakeBackend{
		comments:  map[string][]models.Comment{"p-like": {backendComment("c1", "p-like", "u2")}},
		likeCount: 3,
	}
	srv := backend.server(t)
	router := newCommentRouter(srv.URL, &models.User{ID: "u1", Role: models.RoleReader})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/comment/c1/like?post_id=p-like", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Body.String())
	assert.Equal(t, []string{"c1"}, backend.liked)
}

func TestLikeUnknownComment(t *testing.T) {
	backend := &fakeBackend{comments: map[string][]models.Comment{"p-unknown": nil}}
	srv := backend.server(t)
	router := newCommentRouter(srv.URL, &models.User{ID: "u1", Role: models.RoleReader})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/comment/nope/like?post_id=p-unknown", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, backend.liked)
}

func TestDeleteRequiresOwnershipOrModeration(t *testing.T) {
	backend := &fakeBackend{
		comments: map[string][]models.Comment{"p-del": {backendComment("c1", "p-del", "u2")}},
	}
	srv := backend.server(t)

	// A reader who does not own the comment is rejected locally.
	router := newCommentRouter(srv.URL, &models.User{ID: "u1", Role: models.RoleReader})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/comment/c1?post_id=p-del", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, backend.deleted)
}

func TestDeleteByOwner(t *testing.T) {
	backend := &fakeBackend{
		comments: map[string][]models.Comment{"p-own": {backendComment("c1", "p-own", "u1")}},
	}
	srv := backend.server(t)
	router := newCommentRouter(srv.URL, &models.User{ID: "u1", Role: models.RoleReader})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/comment/c1?post_id=p-own", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c1"}, backend.deleted)
}

func TestDeleteByAdmin(t *testing.T) {
	backend := &fakeBackend{
		comments: map[string][]models.Comment{"p-mod": {backendComment("c1", "p-mod", "u2")}},
	}
	srv := backend.server(t)
	router := newCommentRouter(srv.URL, &models.User{ID: "admin-1", Role: models.RoleAdmin})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/comment/c1?post_id=p-mod", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c1"}, backend.deleted)
}
