package thread

import "time"

// AddProvisional inserts an optimistic comment with a caller-generated temp
// id. Top-level drafts are inserted in sort position; replies are appended
// to the end of the parent's reply list. On error the original view is
// returned unchanged.
func AddProvisional(v View, draft Draft, tempID string, now time.Time, author Author) (View, error) {
	if err := ValidateContent(draft.Content); err != nil {
		return v, err
	}

	c := Comment{
		ID:          tempID,
		Content:     draft.Content,
		PostID:      draft.PostID,
		Author:      author,
		ParentID:    draft.ParentID,
		CreatedAt:   now,
		Provisional: true,
	}

	out := v.clone()

	if draft.ParentID == "" {
		out.TopLevel = append(out.TopLevel, Node{Comment: c})
		sortTopLevel(out.TopLevel, out.Sort)
		return out, nil
	}

	for i := range out.TopLevel {
		if out.TopLevel[i].ID == draft.ParentID {
			out.TopLevel[i].Replies = append(out.TopLevel[i].Replies, c)
			return out, nil
		}
	}
	// Reply target vanished, e.g. deleted while the form was open.
	return v, ErrInvalidParent
}

// Confirm replaces the provisional entry matched by tempID with the
// canonical comment returned by the backend. The entry keeps its position
// among siblings; only the record itself is swapped.
func Confirm(v View, tempID string, server Comment) (View, error) {
	server.Provisional = false
	out := v.clone()
	for i := range out.TopLevel {
		if out.TopLevel[i].ID == tempID && out.TopLevel[i].Provisional {
			server.ParentID = ""
			replies := out.TopLevel[i].Replies
			out.TopLevel[i] = Node{Comment: server, Replies: replies}
			return out, nil
		}
		for j := range out.TopLevel[i].Replies {
			if out.TopLevel[i].Replies[j].ID == tempID && out.TopLevel[i].Replies[j].Provisional {
				server.ParentID = out.TopLevel[i].ID
				out.TopLevel[i].Replies[j] = server
				return out, nil
			}
		}
	}
	return v, ErrProvisionalNotFound
}

// Rollback removes the provisional entry after a failed create.
func Rollback(v View, tempID string) (View, error) {
	out := v.clone()
	for i := range out.TopLevel {
		if out.TopLevel[i].ID == tempID && out.TopLevel[i].Provisional {
			out.TopLevel = append(out.TopLevel[:i], out.TopLevel[i+1:]...)
			return out, nil
		}
		for j := range out.TopLevel[i].Replies {
			if out.TopLevel[i].Replies[j].ID == tempID && out.TopLevel[i].Replies[j].Provisional {
				rs := out.TopLevel[i].Replies
				out.TopLevel[i].Replies = append(rs[:j], rs[j+1:]...)
				return out, nil
			}
		}
	}
	return v, ErrProvisionalNotFound
}

// ToggleLike flips the current user's like on a comment at either level and
// adjusts the counter. The counter never goes below zero even if the server
// state drifted from the local flag.
func ToggleLike(v View, id string) (View, error) {
	out := v.clone()
	for i := range out.TopLevel {
		if out.TopLevel[i].ID == id {
			toggle(&out.TopLevel[i].Comment)
			return out, nil
		}
		for j := range out.TopLevel[i].Replies {
			if out.TopLevel[i].Replies[j].ID == id {
				toggle(&out.TopLevel[i].Replies[j])
				return out, nil
			}
		}
	}
	return v, ErrCommentNotFound
}

func toggle(c *Comment) {
	if c.Liked {
		c.Liked = false
		if c.LikeCount > 0 {
			c.LikeCount--
		}
		return
	}
	c.Liked = true
	c.LikeCount++
}

// Remove deletes a comment from the view. Removing a top-level comment
// cascades to its replies; removing a reply leaves the parent untouched.
func Remove(v View, id string) (View, error) {
	out := v.clone()
	for i := range out.TopLevel {
		if out.TopLevel[i].ID == id {
			out.TopLevel = append(out.TopLevel[:i], out.TopLevel[i+1:]...)
			return out, nil
		}
		for j := range out.TopLevel[i].Replies {
			if out.TopLevel[i].Replies[j].ID == id {
				rs := out.TopLevel[i].Replies
				out.TopLevel[i].Replies = append(rs[:j], rs[j+1:]...)
				return out, nil
			}
		}
	}
	return v, ErrCommentNotFound
}
