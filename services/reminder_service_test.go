package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mercury-backend/ledger"
	"mercury-backend/models"
)

type sentMessage struct{ to, body string }

type fakeSender struct {
	sent []sentMessage
	fail map[string]error
}

func (f *fakeSender) Send(to, body string) (string, error) {
	if err := f.fail[to]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, sentMessage{to, body})
	return "SM" + to, nil
}

type fakeRecorder struct{ entries []models.ReminderLog }

func (f *fakeRecorder) RecordReminder(_ context.Context, entry *models.ReminderLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func reminderStore(t *testing.T) *ledger.Store {
	t.Helper()
	s := ledger.NewStore()
	add := func(name, phone, unitPrice, paid string) {
		c, err := s.AddCustomer(ledger.CustomerInput{Name: name, Phone: phone})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddWorkItem(ledger.WorkInput{
			CustomerID: c.ID, Date: models.MustParseDate("2024-03-01"),
			MaterialType: "Ahşap", PaintType: "Vernik", Description: "Kapı",
			Quantity: 1, UnitPrice: decimal.RequireFromString(unitPrice),
		}); err != nil {
			t.Fatal(err)
		}
		if paid != "" {
			if _, err := s.AddPayment(ledger.PaymentInput{
				CustomerID: c.ID, Date: models.MustParseDate("2024-03-02"),
				Amount: decimal.RequireFromString(paid), Method: "Nakit",
			}); err != nil {
				t.Fatal(err)
			}
		}
	}
	add("Ayşe", "0532 444 55 66", "500", "100")
	add("Mehmet", "0533 111 22 33", "1000", "")
	add("Fatma", "0534 000 00 00", "50", "")
	add("Ali", "", "900", "")
	add("Zeynep", "0535 999 88 77", "200", "300")
	return s
}

func TestReminderService_DueCustomers(t *testing.T) {
	svc := NewReminderService(reminderStore(t), &fakeSender{}, nil, decimal.NewFromInt(100), zerolog.Nop())
	var names []string
	for _, row := range svc.DueCustomers() {
		names = append(names, row.Name)
	}
	want := "Mehmet,Ali,Ayşe"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("DueCustomers() = %s, want %s", got, want)
	}
}

func TestReminderService_SendDebtReminders(t *testing.T) {
	sender := &fakeSender{fail: map[string]error{"+905324445566": errors.New("undeliverable")}}
	recorder := &fakeRecorder{}
	svc := NewReminderService(reminderStore(t), sender, recorder, decimal.NewFromInt(100), zerolog.Nop())

	report := svc.SendDebtReminders(context.Background())
	if report != (ReminderReport{Sent: 1, Failed: 1, Skipped: 1}) {
		t.Errorf("SendDebtReminders() = %+v", report)
	}

	if len(sender.sent) != 1 || sender.sent[0].to != "+905331112233" {
		t.Fatalf("sent = %+v, want one message to Mehmet", sender.sent)
	}
	body := sender.sent[0].body
	if !strings.Contains(body, "Mehmet") || !strings.Contains(body, "1000,00 ₺") || !strings.Contains(body, "01.03.2024") {
		t.Errorf("message = %q", body)
	}

	if len(recorder.entries) != 2 {
		t.Fatalf("recorded %d reminders, want 2", len(recorder.entries))
	}
	statuses := map[string]string{}
	for _, e := range recorder.entries {
		statuses[e.Phone] = e.Status
	}
	if statuses["+905331112233"] != "sent" || statuses["+905324445566"] != "failed" {
		t.Errorf("statuses = %v", statuses)
	}
}

func TestReminderService_InvalidSchedule(t *testing.T) {
	svc := NewReminderService(ledger.NewStore(), &fakeSender{}, nil, decimal.Zero, zerolog.Nop())
	if err := svc.StartScheduler("every day"); err == nil {
		svc.Stop()
		t.Fatal("StartScheduler() accepted an invalid schedule")
	}
	if err := svc.StartScheduler("0 9 * * *"); err != nil {
		t.Fatalf("StartScheduler() error: %v", err)
	}
	svc.Stop()
}
