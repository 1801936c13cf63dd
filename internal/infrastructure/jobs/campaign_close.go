package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CampaignCloseRepository is the slice of project and transaction storage the job needs.
type CampaignCloseRepository interface {
	ListEndedActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error)
	Transition(ctx context.Context, project *entities.Project, from entities.ProjectStatus) error
	SumCompleted(ctx context.Context, projectID uuid.UUID) (float64, error)
}

type Notifier interface {
	Publish(ctx context.Context, event entities.DomainEvent) error
}

type TransitionRecorder interface {
	RecordTransition(from, to string)
}

// CampaignCloseJob settles active projects whose end date has passed.
type CampaignCloseJob struct {
	repo     CampaignCloseRepository
	notifier Notifier
	metrics  TransitionRecorder
	interval time.Duration
	batch    int
	now      func() time.Time
}

func NewCampaignCloseJob(repo CampaignCloseRepository, interval time.Duration, batch int) *CampaignCloseJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if batch <= 0 {
		batch = 100
	}
	return &CampaignCloseJob{
		repo:     repo,
		interval: interval,
		batch:    batch,
		now:      time.Now,
	}
}

func (j *CampaignCloseJob) SetNotifier(n Notifier) {
	j.notifier = n
}

func (j *CampaignCloseJob) SetMetrics(m TransitionRecorder) {
	j.metrics = m
}

func (j *CampaignCloseJob) GetName() string {
	return "campaign_close"
}

func (j *CampaignCloseJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute closes one batch and returns how many projects changed status.
func (j *CampaignCloseJob) Execute(ctx context.Context) int {
	now := j.now().UTC()
	projects, err := j.repo.ListEndedActive(ctx, now, j.batch)
	if err != nil {
		logger.Error(ctx, "Failed to fetch ended campaigns", zap.Error(err))
		return 0
	}
	if len(projects) == 0 {
		return 0
	}

	closed := 0
	for _, project := range projects {
		if err := j.close(ctx, project); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				logger.Info(ctx, "Campaign already closed elsewhere", zap.String("projectId", project.ID.String()))
				continue
			}
			logger.Error(ctx, "Failed to close campaign",
				zap.String("projectId", project.ID.String()),
				zap.Error(err),
			)
			continue
		}
		closed++
	}

	logger.Info(ctx, "Campaign close run completed",
		zap.Int("candidates", len(projects)),
		zap.Int("closed", closed),
	)
	return closed
}

func (j *CampaignCloseJob) close(ctx context.Context, project *entities.Project) error {
	raised, err := j.repo.SumCompleted(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("sum completed transactions: %w", err)
	}

	next := *project
	next.Status = Outcome(raised, project.FundingGoal.Float64)
	if err := j.repo.Transition(ctx, &next, entities.ProjectStatusActive); err != nil {
		return err
	}
	if j.metrics != nil {
		j.metrics.RecordTransition(string(entities.ProjectStatusActive), string(next.Status))
	}

	if j.notifier != nil {
		event := entities.DomainEvent{
			Type:    entities.EventProjectClosed,
			Subject: fmt.Sprintf("Campaign \"%s\" has ended", next.Title),
			Data: map[string]interface{}{
				"projectId": next.ID.String(),
				"status":    string(next.Status),
				"raised":    raised,
				"goal":      project.FundingGoal.Float64,
			},
			OccurredAt: j.now().UTC(),
		}
		if err := j.notifier.Publish(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
		}
	}
	return nil
}

// Outcome is funded when the raised amount reached the goal, failed otherwise.
func Outcome(raised, goal float64) entities.ProjectStatus {
	if raised >= goal {
		return entities.ProjectStatusFunded
	}
	return entities.ProjectStatusFailed
}

// Scheduler runs the background jobs on a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

// RegisterCampaignClose adds the close job; overlapping runs are rescheduled.
func (s *Scheduler) RegisterCampaignClose(job *CampaignCloseJob) error {
	_, err := s.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(func() { job.Execute(s.ctx) }),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.GetName(), err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	logger.Info(s.ctx, "Job scheduler started", zap.Int("jobs", len(s.scheduler.Jobs())))
}

func (s *Scheduler) Stop() {
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		logger.Error(context.Background(), "Failed to shutdown scheduler", zap.Error(err))
	}
	logger.Info(context.Background(), "Job scheduler stopped")
}
