package repository

import (
	"io"
	"time"

	"Repokit/internal/config"
	"Repokit/internal/localization"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBatchSize     = 100
	DefaultBulkBatchSize = 1000
)

// Options tune a repository. Zero values are replaced by defaults in withDefaults.
type Options struct {
	BatchSize      int
	BulkBatchSize  int
	CommandTimeout time.Duration
	Retry          RetryPolicy
	Localizer      localization.Localizer
	Log            logrus.FieldLogger
	Now            func() time.Time
}

// NewOptions builds repository options out of the application configuration.
func NewOptions(cfg *config.Configuration, localizer localization.Localizer, log logrus.FieldLogger) Options {
	repo := cfg.Repository
	return Options{
		BatchSize:      repo.BatchSize,
		BulkBatchSize:  repo.BulkBatchSize,
		CommandTimeout: repo.CommandTimeout,
		Retry: RetryPolicy{
			MaxRetries: repo.Retry.MaxRetries,
			BaseDelay:  repo.Retry.BaseDelay,
			MaxDelay:   repo.Retry.MaxDelay,
		},
		Localizer: localizer,
		Log:       log,
	}
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BulkBatchSize <= 0 {
		o.BulkBatchSize = DefaultBulkBatchSize
	}
	o.Retry = o.Retry.withDefaults()
	if o.Localizer == nil {
		o.Localizer = localization.Default()
	}
	if o.Log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.Log = discard
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}
