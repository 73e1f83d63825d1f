// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"mercury-backend/ledger"
	"mercury-backend/models"
	"mercury-backend/utils"
)

// MessageSender delivers one text message and returns its provider id.
type MessageSender interface {
	Send(to, body string) (string, error)
}

// ReminderRecorder keeps the outcome of sent reminders.
type ReminderRecorder interface {
	RecordReminder(ctx context.Context, entry *models.ReminderLog) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSid, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (t *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderReport counts the outcome of one reminder run.
type ReminderReport struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ReminderService texts customers whose open balance reached a threshold.
type ReminderService struct {
	store    *ledger.Store
	sender   MessageSender
	recorder ReminderRecorder
	minDebt  decimal.Decimal
	now      func() time.Time
	logger   zerolog.Logger
	cron     *cron.Cron
}

// NewReminderService creates the service. recorder may be nil.
func NewReminderService(store *ledger.Store, sender MessageSender, recorder ReminderRecorder, minDebt decimal.Decimal, logger zerolog.Logger) *ReminderService {
	return &ReminderService{
		store:    store,
		sender:   sender,
		recorder: recorder,
		minDebt:  minDebt,
		now:      time.Now,
		logger:   logger.With().Str("component", "reminders").Logger(),
	}
}

// StartScheduler runs SendDebtReminders on the given cron schedule.
func (s *ReminderService) StartScheduler(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.SendDebtReminders(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info().Str("schedule", spec).Msg("reminder scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("reminder scheduler stopped")
}

// DueCustomers returns the customers owing at least the threshold, largest
// debt first.
func (s *ReminderService) DueCustomers() []ledger.CustomerRow {
	a := s.store.Accounts()
	customers := a.SortCustomers(a.FilterCustomers(a.Snapshot().Customers, "", ledger.DebtOwing), ledger.SortByDebt)
	due := make([]ledger.CustomerRow, 0, len(customers))
	for _, c := range customers {
		st := a.Stats(c.ID)
		if st.Remaining.LessThan(s.minDebt) {
			continue
		}
		due = append(due, ledger.CustomerRow{Customer: c, CustomerStats: st})
	}
	return due
}

// ReminderMessage is the text sent to a customer.
func ReminderMessage(row ledger.CustomerRow) string {
	msg := fmt.Sprintf("Sayın %s, Mercury hesabınızda %s ödenmemiş bakiye bulunmaktadır.",
		row.Name, ledger.FormatCurrency(row.Remaining))
	if row.HasWork() {
		msg += fmt.Sprintf(" Son işlem tarihi: %s.", row.LastWorkDate.Format("02.01.2006"))
	}
	return msg
}

func (s *ReminderService) SendDebtReminders(ctx context.Context) ReminderReport {
	s.logger.Info().Msg("starting debt reminder processing")

	var report ReminderReport
	for _, row := range s.DueCustomers() {
		to, ok := utils.NormalizePhone(row.Phone)
		if !ok {
			s.logger.Debug().Str("customer", row.Name).Str("phone", row.Phone).Msg("no valid phone, skipping")
			report.Skipped++
			continue
		}

		message := ReminderMessage(row)
		entry := models.ReminderLog{
			CustomerID: row.ID,
			Phone:      to,
			Remaining:  row.Remaining,
			Message:    message,
			Status:     "sent",
			SentAt:     s.now(),
		}

		sid, err := s.sender.Send(to, message)
		if err != nil {
			s.logger.Warn().Err(err).Str("customer", row.Name).Msg("failed to send reminder")
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
			report.Failed++
		} else {
			s.logger.Info().Str("customer", row.Name).Str("sid", sid).Msg("reminder sent")
			report.Sent++
		}

		if s.recorder != nil {
			if err := s.recorder.RecordReminder(ctx, &entry); err != nil {
				s.logger.Error().Err(err).Str("customer", row.Name).Msg("failed to log reminder")
			}
		}
	}

	s.logger.Info().
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("debt reminder processing completed")
	return report
}
