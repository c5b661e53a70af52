package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/IQ2i/thot/internal/core/domain"
)

// Scopes requested for service account credentials.
var Scopes = []string{docs.DocumentsReadonlyScope, drive.DriveReadonlyScope}

// Credentials selects how Google APIs are authenticated.
// File takes precedence over Token.
type Credentials struct {
	// File is the path of a service account or authorized user JSON file.
	File string

	// Token is a raw OAuth2 access token.
	Token string
}

// IsZero reports whether no credentials are configured.
func (c Credentials) IsZero() bool {
	return c.File == "" && c.Token == ""
}

// ClientOptions returns the options authenticating API services.
func (c Credentials) ClientOptions() ([]option.ClientOption, error) {
	switch {
	case c.File != "":
		return []option.ClientOption{
			option.WithCredentialsFile(c.File),
			option.WithScopes(Scopes...),
		}, nil
	case c.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token, TokenType: "Bearer"})
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	default:
		return nil, fmt.Errorf("google: %w", domain.ErrNoToken)
	}
}

// NewDriveService creates a Google Drive API service.
func NewDriveService(ctx context.Context, opts ...option.ClientOption) (*drive.Service, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// NewDocsService creates a Google Docs API service.
func NewDocsService(ctx context.Context, opts ...option.ClientOption) (*docs.Service, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	return svc, nil
}
