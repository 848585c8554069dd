package awscostexplorer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/elC0mpa/vm-doctor/model"
)

const (
	costsAggregation = "UnblendedCost"
	computeService   = "Amazon Elastic Compute Cloud - Compute"
)

func NewService(awsconfig aws.Config) *service {
	return &service{
		client: costexplorer.NewFromConfig(awsconfig),
		days:   map[string]*dayCosts{},
	}
}

// GetInstanceCost implements service.BillingService. Resource level data is queried
// once per day and cached for the remaining instances of the run.
func (s *service) GetInstanceCost(ctx context.Context, vm model.VmIdentity, day time.Time) (*model.BillingRow, error) {
	key := day.UTC().Format("2006-01-02")

	s.mu.Lock()
	costs, ok := s.days[key]
	if !ok {
		rows, err := s.GetDailyInstanceCosts(ctx, day)
		costs = &dayCosts{rows: rows, err: err}
		s.days[key] = costs
	}
	s.mu.Unlock()

	if costs.err != nil {
		return nil, costs.err
	}

	row, ok := costs.rows[vm.InstanceID]
	if !ok {
		return nil, nil
	}
	row.Project = vm.Project
	row.InstanceName = vm.Name
	return &row, nil
}

// GetDailyInstanceCosts returns the EC2 compute cost of every instance for the UTC
// day containing day. Cost Explorer only keeps resource level data for 14 days.
func (s *service) GetDailyInstanceCosts(ctx context.Context, day time.Time) (map[string]model.BillingRow, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)

	input := &costexplorer.GetCostAndUsageWithResourcesInput{
		Granularity: types.GranularityDaily,
		TimePeriod: &types.DateInterval{
			Start: aws.String(dayStart.Format("2006-01-02")),
			End:   aws.String(dayStart.AddDate(0, 0, 1).Format("2006-01-02")),
		},
		Metrics: []string{costsAggregation},
		Filter: &types.Expression{
			Dimensions: &types.DimensionValues{
				Key:    types.DimensionService,
				Values: []string{computeService},
			},
		},
		GroupBy: []types.GroupDefinition{
			{
				Key:  aws.String("RESOURCE_ID"),
				Type: types.GroupDefinitionTypeDimension,
			},
		},
	}

	rows := map[string]model.BillingRow{}

	for {
		output, err := s.client.GetCostAndUsageWithResources(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get resource costs: %w", err)
		}

		for _, result := range output.ResultsByTime {
			for _, g := range result.Groups {
				if len(g.Keys) == 0 {
					continue
				}
				amount, unit, ok := parseMetric(g.Metrics)
				if !ok {
					continue
				}

				row := rows[g.Keys[0]]
				row.Day = dayStart
				row.Cost += amount
				row.Currency = unit
				rows[g.Keys[0]] = row
			}
		}

		if output.NextPageToken == nil {
			break
		}
		input.NextPageToken = output.NextPageToken
	}

	return rows, nil
}

func parseMetric(metrics map[string]types.MetricValue) (float64, string, bool) {
	metric, ok := metrics[costsAggregation]
	if !ok || metric.Amount == nil {
		return 0, "", false
	}

	amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
	if err != nil {
		return 0, "", false
	}

	return amount, aws.ToString(metric.Unit), true
}
