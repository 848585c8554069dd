package notifier

import (
	"context"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
)

type service struct {
	endpoint string
	apiKey   string
	from     string
	to       string
	client   *retryablehttp.Client
	logger   *zap.Logger
}

type NotifierService interface {
	Notify(ctx context.Context, report *model.Report) error
	Enabled() bool
}

// mail is the SendGrid v3 mail/send payload
type mail struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
