package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
)

func TestLoginDecodesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/auth/login" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" {
			t.Errorf("Expected email in body, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"_id":   "u1",
			"name":  "Ada",
			"role":  "author",
			"token": "jwt-123",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Token != "jwt-123" {
		t.Errorf("Expected token jwt-123, got %s", user.Token)
	}
	if user.Role != models.RoleAuthor {
		t.Errorf("Expected author role, got %s", user.Role)
	}
}

func TestTokenIsSentAsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected Bearer test-token, got %s", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(models.User{ID: "u1"})
	}))
	defer server.Close()

	c := New(server.URL).WithToken("test-token")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
}

func TestBackendErrorIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "x@example.com", "bad")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("expected 401 backend error, got %v", err)
	}
	if err.Error() != "backend: 401 invalid credentials" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestLikeCommentReturnsCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comment/like" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"likeCount": 7})
	}))
	defer server.Close()

	c := New(server.URL).WithToken("t")
	count, err := c.LikeComment(context.Background(), "c42")
	if err != nil {
		t.Fatalf("LikeComment failed: %v", err)
	}
	if count != 7 {
		t.Errorf("Expected 7, got %d", count)
	}
}

func TestListPostsBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "go" || q.Get("page") != "2" {
			t.Errorf("Unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]models.Post{{ID: "p1", Title: "Hello"}})
	}))
	defer server.Close()

	c := New(server.URL)
	posts, err := c.ListPosts(context.Background(), PostQuery{Category: "go", Page: 2})
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Hello" {
		t.Errorf("Unexpected posts: %+v", posts)
	}
}
