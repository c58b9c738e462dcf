package apiclient

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/restcheck/rest-api-tests/config"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// BlogClient targets the posts/comments sandbox. Its named operations are pure
// sugar over the generic verb methods, with fixed endpoint templates.
type BlogClient struct {
	*Client
}

// NewBlogClient creates a client for the blog sandbox described by cfg. The
// standard JSON default headers apply.
func NewBlogClient(cfg config.Config, opts Options) *BlogClient {
	if opts.Timeout == 0 {
		opts.Timeout = cfg.RequestTimeout
	}
	return &BlogClient{Client: New(cfg.BlogAPIBaseURL, opts)}
}

func (c *BlogClient) AllPosts() (Response, error) {
	return c.Get("/posts", nil)
}

func (c *BlogClient) Post(id int) (Response, error) {
	return c.Get(fmt.Sprintf("/posts/%d", id), nil)
}

func (c *BlogClient) CreatePost(data ldvalue.Value) (Response, error) {
	return c.Client.Post("/posts", data)
}

func (c *BlogClient) UpdatePost(id int, data ldvalue.Value) (Response, error) {
	return c.Put(fmt.Sprintf("/posts/%d", id), data)
}

func (c *BlogClient) PatchPost(id int, data ldvalue.Value) (Response, error) {
	return c.Patch(fmt.Sprintf("/posts/%d", id), data)
}

func (c *BlogClient) DeletePost(id int) (Response, error) {
	return c.Delete(fmt.Sprintf("/posts/%d", id))
}

func (c *BlogClient) PostComments(postID int) (Response, error) {
	return c.Get(fmt.Sprintf("/posts/%d/comments", postID), nil)
}

func (c *BlogClient) PostsByUser(userID int) (Response, error) {
	return c.Get("/posts", url.Values{"userId": {strconv.Itoa(userID)}})
}

func (c *BlogClient) CommentsByPost(postID int) (Response, error) {
	return c.Get("/comments", url.Values{"postId": {strconv.Itoa(postID)}})
}

func (c *BlogClient) AllUsers() (Response, error) {
	return c.Get("/users", nil)
}

func (c *BlogClient) User(id int) (Response, error) {
	return c.Get(fmt.Sprintf("/users/%d", id), nil)
}
