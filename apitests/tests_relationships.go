package apitests

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoRelationshipTests covers nested resources, query-parameter filtering, and
// pagination across the two sandboxes.
func DoRelationshipTests(t *T) {
	t.Run("post to comments integrity", func(t *T) {
		postResp := t.RequireResponse(t.Blog().Post(1))
		require.Equal(t, 200, postResp.Status)
		post := t.RequireJSON(postResp)

		commentsResp := t.RequireResponse(t.Blog().PostComments(1))
		require.Equal(t, 200, commentsResp.Status)
		comments := t.RequireJSON(commentsResp)

		require.Equal(t, ldvalue.ArrayType, comments.Type())
		assert.Greater(t, comments.Count(), 0, "post should have comments")

		for i := 0; i < comments.Count(); i++ {
			comment := comments.GetByIndex(i)
			assert.Equal(t, post.GetByKey("id").IntValue(), comment.GetByKey("postId").IntValue(),
				"comment %d belongs to the wrong post", comment.GetByKey("id").IntValue())
			for _, field := range []string{"id", "name", "email", "body", "postId"} {
				assert.False(t, comment.GetByKey(field).IsNull(), "comment is missing field %q", field)
			}
			assert.Contains(t, comment.GetByKey("email").StringValue(), "@",
				"invalid email format on comment")
		}
	})

	t.Run("user to posts integrity", func(t *T) {
		userResp := t.RequireResponse(t.Blog().User(1))
		require.Equal(t, 200, userResp.Status)
		user := t.RequireJSON(userResp)

		postsResp := t.RequireResponse(t.Blog().PostsByUser(1))
		require.Equal(t, 200, postsResp.Status)
		posts := t.RequireJSON(postsResp)

		assert.Greater(t, posts.Count(), 0, "user should have posts")
		for i := 0; i < posts.Count(); i++ {
			assert.Equal(t, user.GetByKey("id").IntValue(),
				posts.GetByIndex(i).GetByKey("userId").IntValue())
		}
	})

	t.Run("query filter matches nested route", func(t *T) {
		nestedResp := t.RequireResponse(t.Blog().PostComments(1))
		require.Equal(t, 200, nestedResp.Status)
		nested := t.RequireJSON(nestedResp)

		filteredResp := t.RequireResponse(t.Blog().CommentsByPost(1))
		require.Equal(t, 200, filteredResp.Status)
		filtered := t.RequireJSON(filteredResp)

		assert.Equal(t, nested.Count(), filtered.Count(),
			"nested route and query filter should return the same comment set")
	})

	t.Run("pagination on user sandbox", func(t *T) {
		page1Resp := t.RequireResponse(t.User().Users(1))
		require.Equal(t, 200, page1Resp.Status)
		page1 := t.RequireJSON(page1Resp)

		page2Resp := t.RequireResponse(t.User().Users(2))
		require.Equal(t, 200, page2Resp.Status)
		page2 := t.RequireJSON(page2Resp)

		assert.Equal(t, 1, page1.GetByKey("page").IntValue())
		assert.Equal(t, 2, page2.GetByKey("page").IntValue())
		assert.Greater(t, page1.GetByKey("data").Count(), 0, "page 1 should not be empty")
		assert.Greater(t, page2.GetByKey("data").Count(), 0, "page 2 should not be empty")

		firstOfPage1 := page1.GetByKey("data").GetByIndex(0).GetByKey("id").IntValue()
		firstOfPage2 := page2.GetByKey("data").GetByIndex(0).GetByKey("id").IntValue()
		assert.NotEqual(t, firstOfPage1, firstOfPage2, "pages should not overlap")
	})

	t.Run("single user from user sandbox", func(t *T) {
		resp := t.RequireResponse(t.User().User(2))
		require.Equal(t, 200, resp.Status)

		data := t.RequireJSON(resp).GetByKey("data")
		assert.Equal(t, 2, data.GetByKey("id").IntValue())
		email := data.GetByKey("email").StringValue()
		assert.True(t, strings.Contains(email, "@"), "user email should be well formed: %q", email)
	})
}
