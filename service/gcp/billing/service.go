package gcpbilling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/elC0mpa/vm-doctor/model"
)

func NewService(ctx context.Context, projectID, billingAccount, dataset string, opts ...option.ClientOption) (*service, error) {
	if billingAccount == "" {
		return nil, fmt.Errorf("a billing account is required to query the billing export")
	}

	bqClient, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &service{
		projectID:      projectID,
		billingAccount: billingAccount,
		dataset:        dataset,
		bqClient:       bqClient,
		days:           map[string]*dayCosts{},
	}, nil
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

// GetInstanceCost implements service.BillingService.
// The export is queried once per day and cached, so a fleet scan costs a single query.
func (s *service) GetInstanceCost(ctx context.Context, vm model.VmIdentity, day time.Time) (*model.BillingRow, error) {
	costs := s.costsFor(ctx, day)
	if costs.err != nil {
		return nil, costs.err
	}

	project := vm.Project
	if project == "" {
		project = s.projectID
	}

	row, ok := costs.rows[rowKey(project, vm.Name)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *service) costsFor(ctx context.Context, day time.Time) *dayCosts {
	key := civil.DateOf(day.UTC()).String()

	// Failures are cached for the day as well, timeouts included.
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.days[key]; ok {
		return cached
	}

	costs := &dayCosts{rows: map[string]model.BillingRow{}}
	rows, err := s.GetDailyInstanceCosts(ctx, day)
	if err != nil {
		costs.err = err
	}
	for _, row := range rows {
		costs.rows[rowKey(row.Project, row.InstanceName)] = row
	}

	s.days[key] = costs
	return costs
}

// GetDailyInstanceCosts returns the accumulated Compute Engine cost of every
// instance for the UTC day containing day
func (s *service) GetDailyInstanceCosts(ctx context.Context, day time.Time) ([]model.BillingRow, error) {
	date := civil.DateOf(day.UTC())

	// Query BigQuery detailed (resource-level) billing export table
	// The table name format is: project.dataset.gcp_billing_export_resource_v1_BILLING_ACCOUNT_ID
	q := s.bqClient.Query(dailyInstanceCostQuery(s.projectID, s.dataset, s.billingAccount))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "day", Value: date},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute BigQuery query: %w", err)
	}

	dayStart := date.In(time.UTC)
	var rows []model.BillingRow

	for {
		var row struct {
			ProjectID    string  `bigquery:"project_id"`
			InstanceName string  `bigquery:"instance_name"`
			TotalCost    float64 `bigquery:"total_cost"`
			Currency     string  `bigquery:"currency"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BigQuery row: %w", err)
		}

		rows = append(rows, model.BillingRow{
			Project:      row.ProjectID,
			InstanceName: row.InstanceName,
			Day:          dayStart,
			Cost:         row.TotalCost,
			Currency:     row.Currency,
		})
	}

	return rows, nil
}

func dailyInstanceCostQuery(projectID, dataset, billingAccount string) string {
	return fmt.Sprintf(`
		SELECT
			project.id AS project_id,
			resource.name AS instance_name,
			SUM(cost) AS total_cost,
			currency
		FROM `+"`%s.%s.gcp_billing_export_resource_v1_%s`"+`
		WHERE
			service.description = 'Compute Engine'
			AND resource.name IS NOT NULL
			AND DATE(usage_start_time) = @day
		GROUP BY project_id, instance_name, currency
	`, projectID, dataset, billingTableSuffix(billingAccount))
}

// billingTableSuffix turns "billingAccounts/0123AB-CDEF45-678901" into "0123AB_CDEF45_678901"
func billingTableSuffix(billingAccount string) string {
	id := strings.ReplaceAll(billingAccount, "billingAccounts/", "")
	return strings.ReplaceAll(id, "-", "_")
}

func rowKey(project, instance string) string {
	return project + "/" + instance
}
