package services

import (
	"errors"
	"sync"
	"time"

	"Repokit/internal/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor purges soft deleted rows once they are older than the configured retention.
type Janitor struct {
	itemService   ItemService
	boxService    BoxService
	configuration *config.Configuration
	logService    LogService
	cleaning      bool
	stopped       bool
	mutex         sync.Mutex
	running       sync.WaitGroup
	cron          *cron.Cron
	now           func() time.Time
}

// CleanReport sums up one clean cycle.
type CleanReport struct {
	Cutoff       time.Time `json:"cutoff"`
	ItemsPurged  int       `json:"itemsPurged"`
	BoxesPurged  int       `json:"boxesPurged"`
	Forced       bool      `json:"forced"`
	FailedStages []string  `json:"failedStages,omitempty"`
}

var (
	ErrCleaningInProgress = errors.New("cleaning is in progress")
	ErrJanitorStopped     = errors.New("janitor is stopped")
)

func NewJanitorService(
	itemService ItemService,
	boxService BoxService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		itemService:   itemService,
		boxService:    boxService,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ForceStartCleanCycle runs one clean cycle in the background right away.
func (j *Janitor) ForceStartCleanCycle() error {
	if err := j.tryStart(); err != nil {
		return err
	}
	go func() {
		defer j.finish()
		j.clean(true)
	}()
	return nil
}

// RunCleanCycle runs one clean cycle and waits for it.
func (j *Janitor) RunCleanCycle() (*CleanReport, error) {
	if err := j.tryStart(); err != nil {
		return nil, err
	}
	defer j.finish()
	return j.clean(true), nil
}

func (j *Janitor) StartCleanCycle() error {
	schedule := j.configuration.Server.CleanConfig.Schedule
	j.logService.Log.WithField("cron", schedule).Debug("starting cleaning job")
	_, err := j.cron.AddFunc(schedule, func() {
		if j.tryStart() != nil {
			return
		}
		defer j.finish()
		j.clean(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start cleaning job")
		return err
	}
	j.cron.Start()
	return nil
}

// StopClean refuses new cycles and waits for the running one to return, whether it was
// scheduled or forced.
func (j *Janitor) StopClean() {
	j.mutex.Lock()
	j.stopped = true
	j.mutex.Unlock()
	<-j.cron.Stop().Done()
	j.running.Wait()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "stopped",
	}).Info("Janitor clean stopped")
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

// tryStart claims the single cycle slot. The wait group is only added to under the mutex
// while not stopped, so StopClean never waits on a cycle that starts after it.
func (j *Janitor) tryStart() error {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.stopped {
		return ErrJanitorStopped
	}
	if j.cleaning {
		return ErrCleaningInProgress
	}
	j.cleaning = true
	j.running.Add(1)
	return nil
}

func (j *Janitor) finish() {
	j.mutex.Lock()
	j.cleaning = false
	j.mutex.Unlock()
	j.running.Done()
}

// clean purges items before boxes; purging a box also removes whatever items it still holds.
func (j *Janitor) clean(forced bool) *CleanReport {
	report := &CleanReport{
		Cutoff: j.now().Add(-j.configuration.Server.CleanConfig.Retention),
		Forced: forced,
	}
	fields := logrus.Fields{"job": "clean", "status": "start", "cutoff": report.Cutoff}
	if forced {
		fields["status"] = "forced"
	} else {
		fields["cron"] = j.configuration.Server.CleanConfig.Schedule
	}
	j.logService.Log.WithFields(fields).Debug("cleaning job started")

	items := j.itemService.PurgeDeleted(report.Cutoff)
	if items.HasErrors() {
		report.FailedStages = append(report.FailedStages, "items")
		j.logStageFailure("items", items.Err())
	} else {
		report.ItemsPurged = items.ResultObject
	}

	boxes := j.boxService.PurgeDeleted(report.Cutoff)
	if boxes.HasErrors() {
		report.FailedStages = append(report.FailedStages, "boxes")
		j.logStageFailure("boxes", boxes.Err())
	} else {
		report.BoxesPurged = boxes.ResultObject
	}

	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "finished",
		"items":  report.ItemsPurged,
		"boxes":  report.BoxesPurged,
	}).Info("cleaning job finished")
	return report
}

func (j *Janitor) logStageFailure(stage string, err error) {
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "clean",
		"status": "error",
		"stage":  stage,
		"error":  err,
	}).Error("Failed to purge deleted rows")
}
