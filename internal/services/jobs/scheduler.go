package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/ports/jobs"
	"github.com/Npcprogramming/Taro2.0/internal/ports/service"
)

// DefaultRetryDelays паузы перед повторами: +1m, +10m, +30m
var DefaultRetryDelays = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	retryDelays    []time.Duration
	now            func() time.Time
	log            *slog.Logger
	wg             sync.WaitGroup
}

// NewScheduler создаёт новый планировщик джоб, alerterService может быть nil
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService) *Scheduler {
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		retryDelays:    DefaultRetryDelays,
		now:            time.Now,
		log:            log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы и не блокирует
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}

	return nil
}

// Wait ждёт остановки всех джоб после отмены контекста
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob крутит джобу до отмены контекста
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := s.now()
		nextRun := job.NextRun(now)
		s.log.Debug("job scheduled", "job_name", jobName, "next_run", nextRun)

		timer := time.NewTimer(nextRun.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
		}

		attemptErrors, err := s.executeJobWithRetry(ctx, job)
		if err != nil {
			s.log.Error("job failed after all retries",
				"job_name", jobName,
				"attempts", len(attemptErrors),
				"error", err,
			)
			s.sendAlert(ctx, jobName, attemptErrors)
			continue
		}
		s.log.Info("job executed successfully", "job_name", jobName)
	}
}

// jobAttemptError ошибка конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry выполняет джобу, при ошибке повторяет через retryDelays.
// Возвращает ошибки всех попыток и финальную ошибку.
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) ([]jobAttemptError, error) {
	jobName := job.Name()
	var attemptErrors []jobAttemptError

	for attempt := 1; ; attempt++ {
		err := job.Run(ctx)
		if err == nil {
			return attemptErrors, nil
		}
		attemptErrors = append(attemptErrors, jobAttemptError{attempt: attempt, err: err})

		if attempt > len(s.retryDelays) {
			return attemptErrors, fmt.Errorf("all retry attempts failed (total attempts: %d): %w", attempt, err)
		}

		s.log.Warn("job execution failed, will retry",
			"job_name", jobName,
			"attempt", attempt,
			"retries_remaining", len(s.retryDelays)-attempt+1,
			"error", err,
		)

		timer := time.NewTimer(s.retryDelays[attempt-1])
		select {
		case <-ctx.Done():
			timer.Stop()
			return attemptErrors, ctx.Err()
		case <-timer.C:
		}
	}
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil || ctx.Err() != nil {
		return
	}

	var message strings.Builder
	message.WriteString("⚠️ Финальная ошибка планировщика, ретраи исчерпаны\n\n")
	fmt.Fprintf(&message, "Джоба: %s\n\n", jobName)
	message.WriteString("Ошибки попыток:\n")
	for _, attemptErr := range attemptErrors {
		fmt.Fprintf(&message, "Попытка %d: %s\n", attemptErr.attempt, attemptErr.err)
	}

	if alertErr := s.alerterService.SendAlert(ctx, strings.TrimSuffix(message.String(), "\n")); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}

// dailyAt ближайший момент hour:minute в location строго после now
func dailyAt(now time.Time, location *time.Location, hour, minute int) time.Time {
	local := now.In(location)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
