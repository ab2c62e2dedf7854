package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/infrastructure/reporting"
)

type AbsenceChecker interface {
	CheckAbsences(ctx context.Context) (*contract.AlertRunResponse, error)
}

// AbsenceAlertJob runs the absence checker on a fixed interval.
type AbsenceAlertJob struct {
	checker  AbsenceChecker
	interval time.Duration
}

func NewAbsenceAlertJob(checker AbsenceChecker, interval time.Duration) *AbsenceAlertJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AbsenceAlertJob{checker: checker, interval: interval}
}

func (j *AbsenceAlertJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Infof("Absence alert cron started (every %s)", j.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping absence alert cron...")
			return
		case <-ticker.C:
			j.run(ctx)
		}
	}
}

func (j *AbsenceAlertJob) run(ctx context.Context) {
	res, err := j.checker.CheckAbsences(ctx)
	if err != nil {
		reporting.Errorf("absence alert run failed: %v", err)
	}

	if res != nil {
		log.Infof("Absence alerts: checked %d alunos, created %d alerts, notified %d", res.Checked, res.Created, res.Notified)
	}
}
