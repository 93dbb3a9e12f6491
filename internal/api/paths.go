package api

// Route table of the backend API. Kept in one place so a backend rename is a
// one-line change here.
const (
	pathSignup = "/auth/register"
	pathLogin  = "/auth/login"
	pathMe     = "/auth/me"

	pathAllUsers   = "/user/all-users"
	pathMyProfile  = "/user/my-profile"
	pathUpdateUser = "/user/update"
	pathDeleteUser = "/user/delete"
	pathUploadImg  = "/user/image-upload"

	pathPosts      = "/post"
	pathDrafts     = "/post/drafts"
	pathMyPosts    = "/post/my-posts"
	pathCreatePost = "/post/create-post"
	pathDeletePost = "/post/delete-post"

	pathAllComments   = "/comment/get-all-comments"
	pathCreateComment = "/comment/create"
	pathDeleteComment = "/comment/delete"
	pathEditComment   = "/comment/edit"
	pathLikeComment   = "/comment/like"
	pathReplyComment  = "/comment/reply"

	pathTotalPosts       = "/stats/total-posts"
	pathTotalUsers       = "/stats/total-users"
	pathTotalComments    = "/stats/total-comments"
	pathRecentActivities = "/stats/recent-activities"
	pathPublishedToday   = "/stats/published-today"
	pathAuthorTotalPosts = "/stats/author-total-posts"
	pathCategoryStats    = "/stats/category-stats"
)

func pathPost(id string) string         { return "/post/" + id }
func pathUpdatePost(id string) string   { return "/post/update/" + id }
func pathPostComments(id string) string { return "/comment/get-post-comments/" + id }
