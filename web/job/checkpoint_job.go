// Package job contains scheduled maintenance tasks run by the web server's
// cron scheduler.
package job

import (
	"authboard/database"
	"authboard/logger"
)

// CheckpointJob periodically flushes the sqlite WAL into the main database
// file so it does not grow without bound.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	} else {
		logger.Debug("wal checkpoint completed")
	}
}
