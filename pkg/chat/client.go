package chat

import (
	"context"
	"errors"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"
)

// Client wraps the Stream chat SDK. The app only needs two calls: minting
// user tokens for the frontend SDK and mirroring user profiles so display
// names and avatars stay in sync.
type Client struct {
	api *stream.Client
}

func NewClient(apiKey, apiSecret, baseURL string) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("chat: api key and secret are required")
	}
	api, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		api.BaseURL = baseURL
	}
	return &Client{api: api}, nil
}

// CreateToken mints a user token the frontend chat SDK authenticates with.
// Tokens carry no expiry, matching the provider's default.
func (c *Client) CreateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("chat: empty user id")
	}
	return c.api.CreateToken(userID, time.Time{})
}

// UserProfile is the mirrored subset of a user document.
type UserProfile struct {
	ID    string
	Name  string
	Image string
}

// UpsertUser creates or updates the mirrored profile on the chat provider.
func (c *Client) UpsertUser(ctx context.Context, p UserProfile) error {
	if p.ID == "" {
		return errors.New("chat: empty user id")
	}
	_, err := c.api.UpsertUser(ctx, &stream.User{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
	})
	return err
}
