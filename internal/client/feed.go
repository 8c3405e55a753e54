package client

import (
	"context"
	"net/http"
	"net/url"
)

type statusRef struct {
	StatusID string `json:"statusId"`
}

func (c *Client) Feed(ctx context.Context) ([]Post, error) {
	env, err := call[[]Post](ctx, c, request{op: "feed", method: http.MethodGet, url: c.api("/status")})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	return c.post(ctx, request{op: "get status", method: http.MethodGet, url: c.api("/status/" + url.PathEscape(id))})
}

func (c *Client) CreatePost(ctx context.Context, content string) (*Post, error) {
	return c.post(ctx, request{op: "create status", method: http.MethodPost, url: c.api("/status"), body: map[string]string{"content": content}})
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.send(ctx, request{op: "delete status", method: http.MethodDelete, url: c.api("/status/" + url.PathEscape(id))})
	return err
}

func (c *Client) Like(ctx context.Context, postID string) (*Post, error) {
	return c.post(ctx, request{op: "like", method: http.MethodPost, url: c.api("/like"), body: statusRef{postID}})
}

func (c *Client) Unlike(ctx context.Context, postID string) (*Post, error) {
	return c.post(ctx, request{op: "unlike", method: http.MethodDelete, url: c.api("/like"), body: statusRef{postID}})
}

func (c *Client) Comment(ctx context.Context, postID, content string) (*Post, error) {
	return c.post(ctx, request{op: "comment", method: http.MethodPost, url: c.api("/comment"), body: map[string]string{
		"statusId": postID, "content": content,
	}})
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	_, err := c.send(ctx, request{op: "delete comment", method: http.MethodDelete, url: c.api("/comment/" + url.PathEscape(commentID)), body: statusRef{postID}})
	return err
}

func (c *Client) post(ctx context.Context, r request) (*Post, error) {
	env, err := call[Post](ctx, c, r)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
