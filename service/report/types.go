package report

import "github.com/elC0mpa/vm-doctor/model"

type service struct{}

type ReportService interface {
	Build(meta model.RunMetadata, entries []model.ReportEntry) *model.Report
}
