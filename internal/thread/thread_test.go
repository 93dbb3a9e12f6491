package thread

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mk(id, parent string, offset time.Duration, likes int) Comment {
	return Comment{
		ID:        id,
		Content:   "comment " + id,
		PostID:    "post-1",
		Author:    Author{ID: "u1", Name: "Ada", Role: "reader"},
		ParentID:  parent,
		CreatedAt: base.Add(offset),
		LikeCount: likes,
	}
}

func topIDs(v View) []string {
	ids := make([]string, len(v.TopLevel))
	for i, n := range v.TopLevel {
		ids[i] = n.ID
	}
	return ids
}

func TestBuildPartitionsRepliesUnderParent(t *testing.T) {
	v := Build([]Comment{
		mk("a", "", 0, 0),
		mk("r1", "a", time.Minute, 0),
	}, SortNewest)

	require.Len(t, v.TopLevel, 1)
	require.Len(t, v.TopLevel[0].Replies, 1)
	assert.Equal(t, "r1", v.TopLevel[0].Replies[0].ID)
	assert.Equal(t, 0, v.Orphans)
}

func TestBuildDropsOrphans(t *testing.T) {
	v := Build([]Comment{
		mk("a", "", 0, 0),
		mk("r2", "missing-id", time.Minute, 0),
	}, SortNewest)

	assert.Equal(t, []string{"a"}, topIDs(v))
	assert.Equal(t, 1, v.Orphans)
	assert.Equal(t, 1, v.Len())
}

func TestBuildFlattensDeepNesting(t *testing.T) {
	// r2 replies to r1 which replies to a; the view keeps two levels, so r2
	// lands under a.
	v := Build([]Comment{
		mk("a", "", 0, 0),
		mk("r1", "a", time.Minute, 0),
		mk("r2", "r1", 2*time.Minute, 0),
	}, SortNewest)

	require.Len(t, v.TopLevel, 1)
	require.Len(t, v.TopLevel[0].Replies, 2)
	assert.Equal(t, "a", v.TopLevel[0].Replies[1].ParentID)
	assert.Equal(t, "r2", v.TopLevel[0].Replies[1].ID)
}

func TestBuildBrokenChainCountsAsOrphan(t *testing.T) {
	// r2's parent r1 exists but r1's own parent does not, so neither can be
	// attached anywhere.
	v := Build([]Comment{
		mk("a", "", 0, 0),
		mk("r1", "gone", time.Minute, 0),
		mk("r2", "r1", 2*time.Minute, 0),
	}, SortNewest)

	assert.Equal(t, []string{"a"}, topIDs(v))
	assert.Equal(t, 2, v.Orphans)
}

func TestBuildCountInvariant(t *testing.T) {
	input := []Comment{
		mk("c", "", 0, 3),
		mk("a", "", time.Minute, 1),
		mk("r1", "a", 2*time.Minute, 0),
		mk("r2", "c", 3*time.Minute, 0),
		mk("r3", "a", 4*time.Minute, 0),
		mk("x", "nowhere", 5*time.Minute, 0),
	}
	v := Build(input, SortOldest)

	replies := 0
	for _, n := range v.TopLevel {
		replies += len(n.Replies)
	}
	assert.Equal(t, len(input), len(v.TopLevel)+replies+v.Orphans)
}

func TestSortScenarios(t *testing.T) {
	// A: 2 likes at t1, B: 5 likes at t2 > t1.
	comments := []Comment{
		mk("A", "", 0, 2),
		mk("B", "", time.Hour, 5),
	}

	v := Build(comments, SortPopular)
	assert.Equal(t, []string{"B", "A"}, topIDs(v))

	v = Resort(v, SortNewest)
	assert.Equal(t, []string{"B", "A"}, topIDs(v))

	v = Resort(v, SortOldest)
	assert.Equal(t, []string{"A", "B"}, topIDs(v))
}

func TestSortNewestReversesOldest(t *testing.T) {
	var comments []Comment
	for i := 0; i < 7; i++ {
		comments = append(comments, mk(fmt.Sprintf("c%d", i), "", time.Duration(i)*time.Minute, i%3))
	}
	newest := Build(comments, SortNewest)
	oldest := Resort(newest, SortOldest)

	n := topIDs(newest)
	o := topIDs(oldest)
	require.Equal(t, len(n), len(o))
	for i := range n {
		assert.Equal(t, n[i], o[len(o)-1-i])
	}
}

func TestSortPopularNonIncreasing(t *testing.T) {
	comments := []Comment{
		mk("a", "", 0, 4),
		mk("b", "", time.Minute, 9),
		mk("c", "", 2*time.Minute, 4),
		mk("d", "", 3*time.Minute, 0),
	}
	v := Build(comments, SortPopular)
	for i := 1; i < len(v.TopLevel); i++ {
		assert.GreaterOrEqual(t, v.TopLevel[i-1].LikeCount, v.TopLevel[i].LikeCount)
	}
}

func TestPopularTieBrokenByNewest(t *testing.T) {
	comments := []Comment{
		mk("old", "", 0, 3),
		mk("new", "", time.Hour, 3),
	}
	v := Build(comments, SortPopular)
	assert.Equal(t, []string{"new", "old"}, topIDs(v))
}

func TestRepliesStayChronologicalUnderAnySort(t *testing.T) {
	comments := []Comment{
		mk("a", "", 0, 1),
		mk("b", "", time.Minute, 8),
		mk("r2", "a", 3*time.Minute, 5),
		mk("r1", "a", 2*time.Minute, 0),
	}
	for _, mode := range []SortMode{SortNewest, SortOldest, SortPopular} {
		v := Build(comments, mode)
		for _, n := range v.TopLevel {
			if n.ID != "a" {
				continue
			}
			require.Len(t, n.Replies, 2)
			assert.Equal(t, "r1", n.Replies[0].ID, "mode %s", mode)
			assert.Equal(t, "r2", n.Replies[1].ID, "mode %s", mode)
		}
	}
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortOldest, ParseSort("oldest"))
	assert.Equal(t, SortPopular, ParseSort("popular"))
	assert.Equal(t, SortNewest, ParseSort("newest"))
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("bogus"))
}
