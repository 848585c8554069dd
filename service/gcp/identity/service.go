package gcpidentity

import (
	"context"
	"fmt"

	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/option"

	"github.com/elC0mpa/vm-doctor/model"
)

func NewService(ctx context.Context, projectID string, opts ...option.ClientOption) (*service, error) {
	opts = append([]option.ClientOption{option.WithScopes(cloudresourcemanager.CloudPlatformReadOnlyScope)}, opts...)

	client, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource manager client: %w", err)
	}

	return &service{
		projectID: projectID,
		client:    client,
	}, nil
}

// GetAccountInfo implements service.IdentityService
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	project, err := s.GetProjectInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", s.projectID, err)
	}

	name := project.Name
	if name == "" {
		name = s.projectID
	}

	return &model.AccountInfo{
		Provider:    "gcp",
		AccountID:   s.projectID,
		AccountName: name,
	}, nil
}

// GetProjectInfo returns detailed GCP project information
func (s *service) GetProjectInfo(ctx context.Context) (*cloudresourcemanager.Project, error) {
	return s.client.Projects.Get(s.projectID).Context(ctx).Do()
}
