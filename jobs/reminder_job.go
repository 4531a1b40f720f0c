package jobs

import (
	"context"
	"log"
	"time"

	"github.com/omerfman/yeni-nesil-sinif/services"
)

// ReminderJob adapts the reminder sweep to the cron scheduler. The sweep is
// idempotent, so an extra or early tick is harmless.
type ReminderJob struct {
	svc *services.ReminderService
}

func NewReminderJob(svc *services.ReminderService) *ReminderJob {
	return &ReminderJob{svc: svc}
}

func (j *ReminderJob) Run() {
	log.Println("Running job: SendLessonReminders...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := j.svc.Run(ctx, time.Now())
	if err != nil {
		log.Printf("Error running reminder sweep: %v", err)
		return
	}
	if created > 0 {
		log.Printf("Created %d reminder notification(s).", created)
	}
}
