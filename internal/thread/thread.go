// Package thread holds the client-side comment thread model: it turns the
// flat comment list returned by the backend into a two-level view and applies
// optimistic mutations (create, like, delete) to that view without a refetch.
// The package never performs I/O; every operation takes a View snapshot and
// returns a new one, so callers own the confirm/rollback policy.
package thread

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxContentLength is the longest comment body the backend accepts.
const MaxContentLength = 1000

var (
	ErrInvalidParent       = errors.New("thread: reply parent not in view")
	ErrProvisionalNotFound = errors.New("thread: provisional comment not found")
	ErrCommentNotFound     = errors.New("thread: comment not found")
	ErrInvalidContent      = errors.New("thread: content empty or too long")
)

// Author is the embedded author summary shown next to a comment.
type Author struct {
	ID     string
	Name   string
	Avatar string
	Role   string
}

// Comment is a single normalized comment. ParentID is empty for top-level
// comments. Liked is the current user's local like flag; it is derived
// client-side and never read back from the server. Provisional marks a
// comment created optimistically and not yet confirmed by the backend.
type Comment struct {
	ID          string
	Content     string
	PostID      string
	Author      Author
	ParentID    string
	CreatedAt   time.Time
	LikeCount   int
	Liked       bool
	Provisional bool
}

// Node is a top-level comment with its replies attached. Replies are always
// kept oldest-first regardless of the top-level sort.
type Node struct {
	Comment
	Replies []Comment
}

// View is an immutable snapshot of a post's comment thread. Orphans counts
// input comments whose parent chain could not be resolved; they are dropped
// from the view rather than hoisted to the top level.
type View struct {
	Sort     SortMode
	TopLevel []Node
	Orphans  int
}

// Draft is the caller-supplied input for an optimistic create.
type Draft struct {
	Content  string
	PostID   string
	ParentID string
}

// Build partitions an arbitrary-order flat comment list into a two-level
// view. Replies nested deeper than one level are flattened under their
// nearest top-level ancestor; replies whose ancestor chain is broken are
// dropped and counted as orphans.
func Build(comments []Comment, mode SortMode) View {
	byID := make(map[string]Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	replies := make(map[string][]Comment)
	var topLevel []Comment
	orphans := 0

	for _, c := range comments {
		if c.ParentID == "" {
			topLevel = append(topLevel, c)
			continue
		}
		top, ok := resolveTopLevel(c, byID)
		if !ok {
			orphans++
			continue
		}
		// Reparent under the resolved ancestor so the view stays two-level.
		c.ParentID = top
		replies[top] = append(replies[top], c)
	}

	nodes := make([]Node, 0, len(topLevel))
	for _, c := range topLevel {
		rs := replies[c.ID]
		sortReplies(rs)
		nodes = append(nodes, Node{Comment: c, Replies: rs})
	}

	v := View{Sort: mode, TopLevel: nodes}
	sortTopLevel(v.TopLevel, mode)
	return v
}

// resolveTopLevel walks the parent chain up to the nearest top-level
// ancestor. Returns false when the chain leaves the input set or cycles.
func resolveTopLevel(c Comment, byID map[string]Comment) (string, bool) {
	cur := c
	for steps := 0; steps <= len(byID); steps++ {
		parent, ok := byID[cur.ParentID]
		if !ok {
			return "", false
		}
		if parent.ParentID == "" {
			return parent.ID, true
		}
		cur = parent
	}
	return "", false
}

func sortReplies(rs []Comment) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}

// Len is the total number of comments in the view, replies included.
func (v View) Len() int {
	n := len(v.TopLevel)
	for _, node := range v.TopLevel {
		n += len(node.Replies)
	}
	return n
}

// Find returns the comment with the given id from either level.
func (v View) Find(id string) (Comment, bool) {
	for _, node := range v.TopLevel {
		if node.ID == id {
			return node.Comment, true
		}
		for _, r := range node.Replies {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Comment{}, false
}

// clone deep-copies the view so mutations never leak into older snapshots.
func (v View) clone() View {
	out := View{Sort: v.Sort, Orphans: v.Orphans}
	out.TopLevel = make([]Node, len(v.TopLevel))
	for i, node := range v.TopLevel {
		cp := node
		cp.Replies = append([]Comment(nil), node.Replies...)
		out.TopLevel[i] = cp
	}
	return out
}

// ValidateContent checks a comment body against the backend's rules before
// any structural change is made.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrInvalidContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrInvalidContent
	}
	return nil
}
