package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/config"
	"github.com/forkline/restaurant-admin-api/databases"
	"github.com/forkline/restaurant-admin-api/models"
	"github.com/forkline/restaurant-admin-api/push"
	templates "github.com/forkline/restaurant-admin-api/templates/html"
)

// AudienceResolver resolves a target audience to deliverable tokens,
// implemented by push.Resolver
type AudienceResolver interface {
	Resolve(ctx context.Context, audience push.Audience) (push.Resolution, error)
}

// Dispatcher delivers a message to a set of tokens, implemented by push.Dispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, tokens []string, msg push.Message) push.Summary
}

// Scheduler handles periodic background jobs: delivering scheduled
// notifications and sending the daily delivery digest email.
type Scheduler struct {
	cron       *cron.Cron
	NDB        databases.NotificationDatabase
	Resolver   AudienceResolver
	Dispatcher Dispatcher
	Conf       config.Config
}

// NewScheduler creates a new scheduler instance. Jobs are chained with
// SkipIfStillRunning so a delivery tick that outlasts the minute is never
// overlapped by the next one.
func NewScheduler(ndb databases.NotificationDatabase, resolver AudienceResolver, dispatcher Dispatcher, conf config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(zap.L()))
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
		NDB:        ndb,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Conf:       conf,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Deliver due scheduled notifications every minute
	_, err := s.cron.AddFunc("* * * * *", s.deliverDueNotifications)
	if err != nil {
		zap.S().Errorw("failed to register scheduled delivery job", "error", err)
	}

	// Email the previous day's delivery digest daily at 8 AM UTC
	_, err = s.cron.AddFunc("0 8 * * *", s.sendDailyDigest)
	if err != nil {
		zap.S().Errorw("failed to register daily digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Notification scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Notification scheduler stopped")
}

// deliverDueNotifications drains the scheduled rows whose sendAt has passed.
// Each row is claimed atomically (scheduled -> sending) before dispatch, so a
// row is delivered at most once even when workers run concurrently, and then
// finalized with the dispatch outcome.
func (s *Scheduler) deliverDueNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for {
		row, err := s.NDB.ClaimDueScheduled(ctx, time.Now())
		if err == mongo.ErrNoDocuments {
			return
		}
		if err != nil {
			zap.S().Errorw("failed to claim due scheduled notification", "error", err)
			return
		}

		summary := s.deliver(ctx, *row)
		if err := s.NDB.MarkDelivered(ctx, row.ID, summary); err != nil {
			zap.S().Errorw("failed to finalize scheduled notification",
				"notificationId", row.ID.Hex(),
				"error", err,
			)
			continue
		}
		zap.S().Infow("scheduled notification delivered",
			"notificationId", row.ID.Hex(),
			"audience", row.TargetAudience,
			"success", summary.Success,
			"tokensSent", summary.TokensSent,
		)
	}
}

func (s *Scheduler) deliver(ctx context.Context, row models.Notification) models.SendNotificationResponse {
	res, err := s.Resolver.Resolve(ctx, push.Audience(row.TargetAudience))
	if err != nil {
		return models.SendNotificationResponse{
			Success: false,
			Message: fmt.Sprintf("failed to resolve notification audience: %v", err),
		}
	}
	if len(res.Tokens) == 0 {
		return models.SendNotificationResponse{
			Success:  false,
			Message:  "no push tokens found for the selected audience",
			Excluded: res.ExcludedCount,
		}
	}

	summary := s.Dispatcher.Dispatch(ctx, res.Tokens, push.Message{
		Title:    row.Title,
		Body:     row.Body,
		DeepLink: row.DeepLink,
		Data:     row.Data,
	})
	return models.SendNotificationResponse{
		Success:        summary.Success,
		Message:        summary.Message,
		TokensSent:     summary.TokensSent,
		TotalAttempted: summary.TotalAttempted,
		Excluded:       res.ExcludedCount,
	}
}

// sendDailyDigest emails a summary of the previous day's notification deliveries
func (s *Scheduler) sendDailyDigest() {
	if s.Conf.DigestEmail == "" || s.Conf.SendgridAPIKey == "" {
		zap.S().Debug("digest email not configured, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.Add(-24 * time.Hour)

	rows, err := s.NDB.FindSentBetween(ctx, from, to)
	if err != nil {
		zap.S().Errorw("failed to load notifications for digest", "error", err)
		return
	}

	subject := fmt.Sprintf("%s notification digest for %s", s.Conf.Brand, from.Format("Jan 2, 2006"))
	body := buildDigestBody(rows, from)

	if err := s.sendEmail(s.Conf.DigestEmail, subject, body); err != nil {
		zap.S().Errorw("failed to send daily digest", "error", err)
		return
	}
	zap.S().Infow("daily digest sent", "recipient", s.Conf.DigestEmail, "notifications", len(rows))
}

// buildDigestBody renders the plain-text digest for a day's deliveries
func buildDigestBody(rows []models.Notification, day time.Time) string {
	sent, failed, devices := 0, 0, 0
	for _, row := range rows {
		if row.Success {
			sent++
		} else {
			failed++
		}
		devices += row.TokensSent
	}

	body := fmt.Sprintf("Delivery summary for %s\n\nNotifications sent: %d\nNotifications failed: %d\nDevices reached: %d\n",
		day.Format("January 2, 2006"), sent, failed, devices)
	if len(rows) == 0 {
		body += "\nNo notifications were dispatched."
	}
	for _, row := range rows {
		status := "delivered"
		if !row.Success {
			status = "failed"
		}
		body += fmt.Sprintf("\n- %q to %s: %s (%d of %d devices)",
			row.Title, row.TargetAudience, status, row.TokensSent, row.TotalAttempted)
	}
	return body
}

func (s *Scheduler) sendEmail(toEmail, subject, plainText string) error {
	from := mail.NewEmail(s.Conf.Brand, "no-reply@forkline.app")
	to := mail.NewEmail("", toEmail)
	htmlContent := templates.RenderGenericEmail(subject, plainText)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.Conf.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
