package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultMaxRetries = 6
	DefaultBaseDelay  = 200 * time.Millisecond
	DefaultMaxDelay   = 30 * time.Second
)

// RetryPolicy bounds how often a transaction is replayed after a transient fault.
// A negative MaxRetries disables retrying, zero selects DefaultMaxRetries.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxRetries == 0 {
		p.MaxRetries = DefaultMaxRetries
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	return p
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt && d < p.MaxDelay; i++ {
		d *= 2
	}
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Resilient runs work inside one database transaction. When the transaction fails with
// a transient fault it is rolled back and replayed from scratch, so the work either
// commits once or not at all.
func Resilient(ctx context.Context, db *gorm.DB, policy RetryPolicy, log logrus.FieldLogger, work func(tx *gorm.DB) error) error {
	policy = policy.withDefaults()
	for attempt := 0; ; attempt++ {
		err := db.WithContext(ctx).Transaction(work)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt >= policy.MaxRetries {
			return errors.Wrapf(err, "transaction failed after %d attempts", attempt+1)
		}

		delay := policy.delay(attempt)
		if log != nil {
			log.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"delay":   delay.String(),
				"error":   err.Error(),
			}).Warn("transient database error, retrying transaction")
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(err, ctx.Err().Error())
		case <-timer.C:
		}
	}
}
