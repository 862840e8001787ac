package contact

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Purge deletes submissions older than retentionDays.
func Purge(ctx context.Context, store Store, retentionDays int, now time.Time) (int, error) {
	return store.PurgeBefore(ctx, now.AddDate(0, 0, -retentionDays))
}

// StartRetention schedules Purge on spec (a cron expression such as
// "@daily"). It returns a stop function. A non-positive retention disables
// the job.
func StartRetention(store Store, retentionDays int, spec string) (stop func(), err error) {
	if retentionDays <= 0 {
		return func() {}, nil
	}
	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		n, err := Purge(context.Background(), store, retentionDays, time.Now())
		if err != nil {
			log.Printf("contact: retention purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("contact: purged %d submission(s) older than %d days", n, retentionDays)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
