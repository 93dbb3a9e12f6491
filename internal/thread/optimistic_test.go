package thread

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedView(mode SortMode) View {
	return Build([]Comment{
		mk("a", "", 0, 2),
		mk("b", "", time.Minute, 5),
		mk("r1", "a", 2*time.Minute, 0),
	}, mode)
}

var me = Author{ID: "u9", Name: "Grace", Role: "reader"}

func TestAddProvisionalReplyAppendsAtEnd(t *testing.T) {
	v := seedView(SortNewest)

	v2, err := AddProvisional(v, Draft{Content: "hi", PostID: "post-1", ParentID: "a"}, "tmp-1", base.Add(time.Hour), me)
	require.NoError(t, err)

	_, ok := v2.Find("tmp-1")
	require.True(t, ok)
	for _, n := range v2.TopLevel {
		if n.ID == "a" {
			require.Len(t, n.Replies, 2)
			assert.Equal(t, "tmp-1", n.Replies[1].ID)
			assert.True(t, n.Replies[1].Provisional)
		}
	}
}

func TestAddProvisionalTopLevelSortsIn(t *testing.T) {
	v := seedView(SortNewest)

	v2, err := AddProvisional(v, Draft{Content: "newest of all", PostID: "post-1"}, "tmp-2", base.Add(time.Hour), me)
	require.NoError(t, err)
	assert.Equal(t, "tmp-2", v2.TopLevel[0].ID)
}

func TestAddProvisionalMissingParent(t *testing.T) {
	v := seedView(SortNewest)

	v2, err := AddProvisional(v, Draft{Content: "hi", PostID: "post-1", ParentID: "vanished"}, "tmp-3", base, me)
	assert.ErrorIs(t, err, ErrInvalidParent)
	assert.Equal(t, v, v2, "failed insert must not change the view")
}

func TestAddProvisionalValidatesContent(t *testing.T) {
	v := seedView(SortNewest)

	_, err := AddProvisional(v, Draft{Content: "   ", PostID: "post-1"}, "tmp-4", base, me)
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = AddProvisional(v, Draft{Content: strings.Repeat("x", MaxContentLength+1), PostID: "post-1"}, "tmp-4", base, me)
	assert.ErrorIs(t, err, ErrInvalidContent)

	// Exactly at the limit is fine.
	_, err = AddProvisional(v, Draft{Content: strings.Repeat("x", MaxContentLength), PostID: "post-1"}, "tmp-4", base, me)
	assert.NoError(t, err)
}

func TestCreateRollbackRoundTrip(t *testing.T) {
	for _, parent := range []string{"", "a"} {
		v := seedView(SortNewest)
		v2, err := AddProvisional(v, Draft{Content: "oops", PostID: "post-1", ParentID: parent}, "tmp-5", base.Add(time.Hour), me)
		require.NoError(t, err)

		v3, err := Rollback(v2, "tmp-5")
		require.NoError(t, err)
		assert.Equal(t, v, v3)
	}
}

func TestConfirmSwapsIDInPlace(t *testing.T) {
	v := seedView(SortNewest)
	v2, err := AddProvisional(v, Draft{Content: "hi", PostID: "post-1", ParentID: "a"}, "tmp-1", base.Add(time.Hour), me)
	require.NoError(t, err)

	server := mk("real-42", "a", time.Hour, 0)
	server.Content = "hi"
	v3, err := Confirm(v2, "tmp-1", server)
	require.NoError(t, err)

	for _, n := range v3.TopLevel {
		if n.ID == "a" {
			require.Len(t, n.Replies, 2)
			assert.Equal(t, "real-42", n.Replies[1].ID, "confirmed reply keeps its slot")
			assert.False(t, n.Replies[1].Provisional)
		}
	}
	_, ok := v3.Find("tmp-1")
	assert.False(t, ok)
}

func TestConfirmUnknownTempID(t *testing.T) {
	v := seedView(SortNewest)
	v2, err := Confirm(v, "tmp-nope", mk("real-1", "", 0, 0))
	assert.ErrorIs(t, err, ErrProvisionalNotFound)
	assert.Equal(t, v, v2)

	_, err = Rollback(v, "tmp-nope")
	assert.ErrorIs(t, err, ErrProvisionalNotFound)
}

func TestConfirmDoesNotMatchConfirmedComments(t *testing.T) {
	v := seedView(SortNewest)
	// "a" exists but is not provisional, so it cannot be confirmed over.
	_, err := Confirm(v, "a", mk("real-1", "", 0, 0))
	assert.ErrorIs(t, err, ErrProvisionalNotFound)
}

func TestToggleLikeInvolution(t *testing.T) {
	v := seedView(SortNewest)
	before, _ := v.Find("a")
	require.Equal(t, 2, before.LikeCount)
	require.False(t, before.Liked)

	v2, err := ToggleLike(v, "a")
	require.NoError(t, err)
	liked, _ := v2.Find("a")
	assert.Equal(t, 3, liked.LikeCount)
	assert.True(t, liked.Liked)

	v3, err := ToggleLike(v2, "a")
	require.NoError(t, err)
	assert.Equal(t, v, v3)
}

func TestToggleLikeOnReply(t *testing.T) {
	v := seedView(SortNewest)
	v2, err := ToggleLike(v, "r1")
	require.NoError(t, err)
	r, _ := v2.Find("r1")
	assert.Equal(t, 1, r.LikeCount)
}

func TestToggleLikeNeverBelowZero(t *testing.T) {
	v := Build([]Comment{{ID: "z", Content: "z", CreatedAt: base, Liked: true, LikeCount: 0}}, SortNewest)
	v2, err := ToggleLike(v, "z")
	require.NoError(t, err)
	z, _ := v2.Find("z")
	assert.Equal(t, 0, z.LikeCount)
	assert.False(t, z.Liked)
}

func TestToggleLikeUnknownID(t *testing.T) {
	v := seedView(SortNewest)
	_, err := ToggleLike(v, "nope")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestRemoveTopLevelCascades(t *testing.T) {
	v := Build([]Comment{
		mk("a", "", 0, 0),
		mk("r1", "a", time.Minute, 0),
		mk("r2", "a", 2*time.Minute, 0),
		mk("b", "", 3*time.Minute, 0),
	}, SortNewest)
	require.Equal(t, 4, v.Len())

	v2, err := Remove(v, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v2.Len())
	_, ok := v2.Find("r1")
	assert.False(t, ok)
}

func TestRemoveReplyLeavesParent(t *testing.T) {
	v := seedView(SortNewest)
	v2, err := Remove(v, "r1")
	require.NoError(t, err)

	_, ok := v2.Find("a")
	assert.True(t, ok)
	_, ok = v2.Find("r1")
	assert.False(t, ok)
	assert.Equal(t, v.Len()-1, v2.Len())
}

func TestRemoveUnknownID(t *testing.T) {
	v := seedView(SortNewest)
	v2, err := Remove(v, "nope")
	assert.ErrorIs(t, err, ErrCommentNotFound)
	assert.Equal(t, v, v2)
}

func TestMutationsDoNotAliasSnapshots(t *testing.T) {
	v := seedView(SortNewest)
	snapshot := v.clone()

	_, err := ToggleLike(v, "a")
	require.NoError(t, err)
	_, err = Remove(v, "r1")
	require.NoError(t, err)
	_, err = AddProvisional(v, Draft{Content: "x", PostID: "post-1", ParentID: "a"}, "tmp-9", base, me)
	require.NoError(t, err)

	assert.Equal(t, snapshot, v, "operations must not mutate their input")
}
