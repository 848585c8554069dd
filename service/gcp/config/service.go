package gcpconfig

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// MonitoringReadScope grants read access to Cloud Monitoring time series
const MonitoringReadScope = "https://www.googleapis.com/auth/monitoring.read"

func NewService(projectID string) *service {
	return &service{
		projectID: projectID,
	}
}

func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	// Use Application Default Credentials
	// This supports:
	// - GOOGLE_APPLICATION_CREDENTIALS environment variable
	// - gcloud auth application-default login
	// - Service account on GCE/Cloud Run/Cloud Functions
	return google.FindDefaultCredentials(ctx,
		bigquery.Scope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
		compute.ComputeScope,
		MonitoringReadScope,
	)
}

// GetClientOptions returns client options sharing one set of default credentials
func (s *service) GetClientOptions(ctx context.Context) ([]option.ClientOption, error) {
	creds, err := s.GetCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

// GetProjectID returns the configured project, or the one the credentials belong to
func (s *service) GetProjectID() string {
	return s.projectID
}

// ResolveProjectID fills in the project from the default credentials when none was configured
func (s *service) ResolveProjectID(ctx context.Context) (string, error) {
	if s.projectID != "" {
		return s.projectID, nil
	}

	creds, err := s.GetCredentials(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find default credentials: %w", err)
	}
	if creds.ProjectID == "" {
		return "", fmt.Errorf("no GCP project configured and none found in default credentials")
	}

	s.projectID = creds.ProjectID
	return s.projectID, nil
}
