package apiclient

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/restcheck/rest-api-tests/config"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// UserClient targets the users/auth sandbox. That service does not want a
// Content-Type default on every request, so the default header set is just
// Accept. The named operations are one-line delegations to the verb methods.
type UserClient struct {
	*Client
}

// NewUserClient creates a client for the user sandbox described by cfg.
func NewUserClient(cfg config.Config, opts Options) *UserClient {
	if opts.Timeout == 0 {
		opts.Timeout = cfg.RequestTimeout
	}
	if opts.Headers == nil {
		opts.Headers = map[string]string{"Accept": "application/json"}
	}
	return &UserClient{Client: New(cfg.UserAPIBaseURL, opts)}
}

func (c *UserClient) Users(page int) (Response, error) {
	return c.Get("/users", url.Values{"page": {strconv.Itoa(page)}})
}

func (c *UserClient) User(id int) (Response, error) {
	return c.Get(fmt.Sprintf("/users/%d", id), nil)
}

func (c *UserClient) CreateUser(data ldvalue.Value) (Response, error) {
	return c.Request("POST", "/users", RequestOpts{JSON: data})
}

func (c *UserClient) UpdateUser(id int, data ldvalue.Value) (Response, error) {
	return c.Request("PUT", fmt.Sprintf("/users/%d", id), RequestOpts{JSON: data})
}

func (c *UserClient) DeleteUser(id int) (Response, error) {
	return c.Delete(fmt.Sprintf("/users/%d", id))
}

func (c *UserClient) Login(credentials ldvalue.Value) (Response, error) {
	return c.Request("POST", "/login", RequestOpts{JSON: credentials})
}

func (c *UserClient) Register(data ldvalue.Value) (Response, error) {
	return c.Request("POST", "/register", RequestOpts{JSON: data})
}
