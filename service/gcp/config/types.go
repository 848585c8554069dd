package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

type service struct {
	projectID string
}

type ConfigService interface {
	GetCredentials(ctx context.Context) (*google.Credentials, error)
	GetClientOptions(ctx context.Context) ([]option.ClientOption, error)
	GetProjectID() string
	ResolveProjectID(ctx context.Context) (string, error)
}
