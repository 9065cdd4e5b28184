package graph

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Scopes requested for each credential kind.
var (
	appScopes       = []string{"https://graph.microsoft.com/.default"}
	delegatedScopes = []string{"User.Read", "Mail.ReadWrite"}
)

// Config selects the Graph tenant, application and target user.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// User is the id or user principal name to act on. Empty means the
	// signed-in user (/me), which requires delegated sign-in.
	User string

	// Prompt receives device-code sign-in instructions.
	Prompt io.Writer
}

// appOnly reports whether the config uses application permissions.
func (c Config) appOnly() bool {
	return c.ClientSecret != ""
}

func (c Config) validate() error {
	if c.ClientID == "" {
		return ErrClientIDMissing
	}
	if c.appOnly() && c.User == "" {
		return ErrUserRequired
	}
	return nil
}

// newCredential picks a client-secret credential when a secret is set,
// otherwise device-code sign-in for the current user.
func newCredential(cfg Config) (azcore.TokenCredential, []string, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	if cfg.appOnly() {
		cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("client secret credential: %w", err)
		}
		return cred, appScopes, nil
	}

	tenant := cfg.TenantID
	if tenant == "" {
		tenant = "organizations"
	}
	prompt := cfg.Prompt
	if prompt == nil {
		prompt = io.Discard
	}
	cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
		TenantID: tenant,
		ClientID: cfg.ClientID,
		UserPrompt: func(_ context.Context, msg azidentity.DeviceCodeMessage) error {
			_, err := fmt.Fprintln(prompt, msg.Message)
			return err
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("device code credential: %w", err)
	}
	return cred, delegatedScopes, nil
}
