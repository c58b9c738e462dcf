package apitests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoCRUDTests covers the basic collection/resource operations of the blog
// sandbox: listing, reading, creating, updating, and deleting posts.
func DoCRUDTests(t *T) {
	t.Run("list all posts", func(t *T) {
		resp := t.RequireResponse(t.Blog().AllPosts())
		assert.Equal(t, 200, resp.Status)
		t.RequireResponseTime(resp)

		posts := t.RequireJSON(resp)
		require.Equal(t, ldvalue.ArrayType, posts.Type(), "expected a JSON array of posts")
		assert.Equal(t, 100, posts.Count(), "blog sandbox should expose exactly 100 posts")

		first := posts.GetByIndex(0)
		for _, field := range []string{"id", "title", "body", "userId"} {
			assert.False(t, first.GetByKey(field).IsNull(), "post is missing required field %q", field)
		}
	})

	t.Run("get single post", func(t *T) {
		resp := t.RequireResponse(t.Blog().Post(1))
		assert.Equal(t, 200, resp.Status)
		t.RequireResponseTime(resp)

		post := t.RequireJSON(resp)
		assert.Equal(t, 1, post.GetByKey("id").IntValue())
		assert.NotEmpty(t, post.GetByKey("title").StringValue(), "post title is missing or empty")
		assert.NotEmpty(t, post.GetByKey("body").StringValue(), "post body is missing or empty")
		assert.False(t, post.GetByKey("userId").IsNull(), "post userId is missing")
	})

	t.Run("create post", func(t *T) {
		data := t.Config().TestPostData
		resp := t.RequireResponse(t.Blog().CreatePost(data))
		assert.Equal(t, 201, resp.Status)
		t.RequireResponseTime(resp)

		created := t.RequireJSON(resp)
		assert.False(t, created.GetByKey("id").IsNull(), "created post should have been assigned an id")
		assert.Equal(t, data.GetByKey("title").StringValue(), created.GetByKey("title").StringValue())
		assert.Equal(t, data.GetByKey("body").StringValue(), created.GetByKey("body").StringValue())
		assert.Equal(t, data.GetByKey("userId").IntValue(), created.GetByKey("userId").IntValue())
	})

	t.Run("update post", func(t *T) {
		data := ldvalue.ObjectBuild().
			Set("id", ldvalue.Int(1)).
			Set("title", ldvalue.String("Updated Title")).
			Set("body", ldvalue.String("Updated body content")).
			Set("userId", ldvalue.Int(1)).
			Build()
		resp := t.RequireResponse(t.Blog().UpdatePost(1, data))
		assert.Equal(t, 200, resp.Status)

		updated := t.RequireJSON(resp)
		assert.Equal(t, "Updated Title", updated.GetByKey("title").StringValue())
		assert.Equal(t, 1, updated.GetByKey("id").IntValue())
	})

	t.Run("partially update post", func(t *T) {
		patch := ldvalue.ObjectBuild().
			Set("title", ldvalue.String("Patched Title")).
			Build()
		resp := t.RequireResponse(t.Blog().PatchPost(1, patch))
		assert.Equal(t, 200, resp.Status)

		patched := t.RequireJSON(resp)
		assert.Equal(t, "Patched Title", patched.GetByKey("title").StringValue())
		assert.NotEmpty(t, patched.GetByKey("body").StringValue(),
			"PATCH should preserve fields that were not in the patch")
	})

	t.Run("delete post", func(t *T) {
		resp := t.RequireResponse(t.Blog().DeletePost(1))
		assert.Equal(t, 200, resp.Status)
		t.RequireResponseTime(resp)
	})

	t.Run("response content type", func(t *T) {
		resp := t.RequireResponse(t.Blog().Post(1))
		assert.Equal(t, 200, resp.Status)
		assert.Contains(t, resp.Headers.Get("Content-Type"), "application/json")
	})
}
