package provider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
	awscloudwatch "github.com/elC0mpa/vm-doctor/service/aws/cloudwatch"
	awsconfig "github.com/elC0mpa/vm-doctor/service/aws/config"
	awscostexplorer "github.com/elC0mpa/vm-doctor/service/aws/costexplorer"
	awsec2 "github.com/elC0mpa/vm-doctor/service/aws/ec2"
	awssts "github.com/elC0mpa/vm-doctor/service/aws/sts"
	gcpbilling "github.com/elC0mpa/vm-doctor/service/gcp/billing"
	gcpcompute "github.com/elC0mpa/vm-doctor/service/gcp/compute"
	gcpconfig "github.com/elC0mpa/vm-doctor/service/gcp/config"
	gcpidentity "github.com/elC0mpa/vm-doctor/service/gcp/identity"
	gcpmonitoring "github.com/elC0mpa/vm-doctor/service/gcp/monitoring"
)

// New builds the provider named by flags.Provider
func New(ctx context.Context, flags model.Flags, logger *zap.Logger) (*Bundle, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch flags.Provider {
	case "gcp":
		return NewGCP(ctx, flags.ProjectID(), flags.BillingAccount, flags.BillingDataset, logger)
	case "aws":
		return NewAWS(ctx, flags.Region, flags.Profile, logger)
	default:
		return nil, fmt.Errorf("unsupported provider %q", flags.Provider)
	}
}

// NewGCP wires Compute Engine, Cloud Monitoring and the BigQuery billing export.
// Billing is left out when no billing account is configured; costs then come
// from the price table alone.
func NewGCP(ctx context.Context, projectID, billingAccount, dataset string, logger *zap.Logger) (*Bundle, error) {
	cfgService := gcpconfig.NewService(projectID)

	projectID, err := cfgService.ResolveProjectID(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := cfgService.GetClientOptions(ctx)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Provider: svc.Provider{Name: "gcp"}}

	identityService, err := gcpidentity.NewService(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	b.Identity = identityService

	computeService, err := gcpcompute.NewService(ctx, projectID, logger, opts...)
	if err != nil {
		return nil, err
	}
	b.Inventory = computeService
	b.Stopper = computeService

	monitoringService, err := gcpmonitoring.NewService(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	b.Metrics = monitoringService
	b.closers = append(b.closers, monitoringService.Close)

	if billingAccount == "" {
		logger.Warn("no billing account configured, costs are estimated from the price table")
		return b, nil
	}

	billingService, err := gcpbilling.NewService(ctx, projectID, billingAccount, dataset, opts...)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Billing = billingService
	b.closers = append(b.closers, billingService.Close)

	return b, nil
}

// NewAWS wires EC2, CloudWatch and Cost Explorer for one region
func NewAWS(ctx context.Context, region, profile string, logger *zap.Logger) (*Bundle, error) {
	cfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
	if err != nil {
		return nil, err
	}

	stsService := awssts.NewService(cfg)

	accountID := ""
	if info, err := stsService.GetAccountInfo(ctx); err != nil {
		logger.Warn("could not resolve AWS account", zap.Error(err))
	} else {
		accountID = info.AccountID
	}

	ec2Service := awsec2.NewService(cfg, accountID)

	return &Bundle{Provider: svc.Provider{
		Name:      "aws",
		Identity:  stsService,
		Inventory: ec2Service,
		Metrics:   awscloudwatch.NewService(cfg),
		Billing:   awscostexplorer.NewService(cfg),
		Stopper:   ec2Service,
	}}, nil
}

func (b *Bundle) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
