// Package graph talks to Microsoft Graph: it fetches the user profile and
// acts as the mail host by writing signatures into Outlook drafts.
package graph

import (
	"context"
	"fmt"
	"time"

	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/users"

	"github.com/alnah/go-profilestamp/internal/apierr"
	"github.com/alnah/go-profilestamp/internal/logger"
	"github.com/alnah/go-profilestamp/internal/profile"
)

// api is the slice of Graph the client uses.
type api interface {
	getUser(ctx context.Context, sel []string) (models.Userable, error)
	createMessage(ctx context.Context, msg models.Messageable) (models.Messageable, error)
	getMessage(ctx context.Context, id string, sel []string) (models.Messageable, error)
	updateMessage(ctx context.Context, id string, msg models.Messageable) error
}

// Client is a Graph client bound to one user.
type Client struct {
	api   api
	log   *logger.Logger
	retry apierr.RetryConfig
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRetryConfig overrides the retry policy for profile reads.
func WithRetryConfig(cfg apierr.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// New authenticates per cfg and returns a client for cfg.User.
func New(cfg Config, opts ...Option) (*Client, error) {
	cred, scopes, err := newCredential(cfg)
	if err != nil {
		return nil, err
	}
	gc, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, scopes)
	if err != nil {
		return nil, fmt.Errorf("graph client initialization failed: %w", err)
	}
	return newClient(&sdkAPI{client: gc, user: cfg.User}, opts...), nil
}

func newClient(a api, opts ...Option) *Client {
	c := &Client{
		api:   a,
		log:   logger.NewNop(),
		retry: apierr.DefaultRetryConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile reads the user's profile, retrying throttled or timed-out reads.
func (c *Client) FetchProfile(ctx context.Context) (profile.Record, error) {
	cfg := c.retry
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		c.log.Warn("profile fetch failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	user, err := apierr.RetryWithBackoff(ctx, cfg, func() (models.Userable, error) {
		u, err := c.api.getUser(ctx, profile.Keys)
		return u, classifyError(err)
	}, apierr.IsRetryable)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return recordFromUser(user), nil
}

// recordFromUser converts a Graph user into a profile record. Unset
// properties are stored as nil so they read as absent.
func recordFromUser(u models.Userable) profile.Record {
	str := func(p *string) any {
		if p == nil {
			return nil
		}
		return *p
	}

	rec := profile.Record{
		profile.KeyDisplayName:    str(u.GetDisplayName()),
		profile.KeyGivenName:      str(u.GetGivenName()),
		profile.KeySurname:        str(u.GetSurname()),
		profile.KeyJobTitle:       str(u.GetJobTitle()),
		profile.KeyMail:           str(u.GetMail()),
		profile.KeyMobilePhone:    str(u.GetMobilePhone()),
		profile.KeyOfficeLocation: str(u.GetOfficeLocation()),
		profile.KeyBusinessPhones: nil,
	}
	if phones := u.GetBusinessPhones(); phones != nil {
		rec[profile.KeyBusinessPhones] = phones
	}
	return rec
}

// ---------------------------------------------------------------------------
// sdkAPI - msgraph-sdk-go implementation
// ---------------------------------------------------------------------------

type sdkAPI struct {
	client *msgraphsdk.GraphServiceClient
	user   string
}

func (s *sdkAPI) target() *users.UserItemRequestBuilder {
	if s.user == "" {
		return s.client.Me()
	}
	return s.client.Users().ByUserId(s.user)
}

func (s *sdkAPI) getUser(ctx context.Context, sel []string) (models.Userable, error) {
	return s.target().Get(ctx, &users.UserItemRequestBuilderGetRequestConfiguration{
		QueryParameters: &users.UserItemRequestBuilderGetQueryParameters{Select: sel},
	})
}

func (s *sdkAPI) createMessage(ctx context.Context, msg models.Messageable) (models.Messageable, error) {
	return s.target().Messages().Post(ctx, msg, nil)
}

func (s *sdkAPI) getMessage(ctx context.Context, id string, sel []string) (models.Messageable, error) {
	return s.target().Messages().ByMessageId(id).Get(ctx, &users.ItemMessagesMessageItemRequestBuilderGetRequestConfiguration{
		QueryParameters: &users.ItemMessagesMessageItemRequestBuilderGetQueryParameters{Select: sel},
	})
}

func (s *sdkAPI) updateMessage(ctx context.Context, id string, msg models.Messageable) error {
	_, err := s.target().Messages().ByMessageId(id).Patch(ctx, msg, nil)
	return err
}
