package usecases

import (
	"context"
	"fmt"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/pkg/logger"
	"go.uber.org/zap"
)

// Notifier delivers domain events to whoever sends mail and push messages.
type Notifier interface {
	Publish(ctx context.Context, event entities.DomainEvent) error
}

// MetricsRecorder receives business counters. *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	RecordTransition(from, to string)
	RecordRegistration(role string)
	RecordUpload(docType string)
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, entities.DomainEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordTransition(string, string) {}
func (nopMetrics) RecordRegistration(string)       {}
func (nopMetrics) RecordUpload(string)             {}

// publish never fails the calling operation; the state change already committed.
func publish(ctx context.Context, n Notifier, event entities.DomainEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := n.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "Failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

// ReviewMessage builds the subject and body sent to a company after a review.
func ReviewMessage(project *entities.Project) (subject, body string) {
	switch project.Status {
	case entities.ProjectStatusApproved:
		subject = fmt.Sprintf("Project \"%s\" approved", project.Title)
		body = fmt.Sprintf("Congratulations! Your project \"%s\" has been approved by our team.", project.Title)
	case entities.ProjectStatusRejected:
		subject = fmt.Sprintf("Project \"%s\" rejected", project.Title)
		body = fmt.Sprintf("We regret to inform you that your project \"%s\" was not approved.", project.Title)
	default:
		subject = fmt.Sprintf("Update on project \"%s\"", project.Title)
		body = fmt.Sprintf("The status of your project \"%s\" is now %s.", project.Title, project.Status)
	}
	if project.ReviewNotes.Valid && project.ReviewNotes.String != "" {
		body += "\n\nReviewer notes: " + project.ReviewNotes.String
	}
	if project.RiskRating.Valid {
		body += fmt.Sprintf("\nRisk rating: %d/5", project.RiskRating.Int)
	}
	return subject, body
}
