// The reminder worker watches schedule events and mails the front desk
// about appointments starting soon.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/clinicboard/allotment-api/internal/config"
	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository/postgres"
	scheduleService "github.com/clinicboard/allotment-api/internal/service/schedule"
	"github.com/clinicboard/allotment-api/pkg/logger"
	"github.com/clinicboard/allotment-api/pkg/messaging"
	redisBroker "github.com/clinicboard/allotment-api/pkg/messaging/redis"
)

const (
	reminderHorizonMinutes = 30
	sweepInterval          = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(&logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	scheduleRepo := postgres.NewScheduleRepository(db)

	broker, err := redisBroker.NewBroker(redisBroker.Config{URL: cfg.Redis.URL}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := broker.Subscribe(ctx, messaging.ChannelScheduleUpdated)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe to schedule events")
	}

	sent := map[string]bool{}
	sweep := func() {
		today := time.Now().Format("2006-01-02")
		rows, err := scheduleRepo.ListByDate(ctx, today)
		if err != nil {
			log.Error().Err(err).Msg("failed to load schedule for reminders")
			return
		}
		now := time.Now()
		nowMinute := now.Hour()*60 + now.Minute()
		for _, row := range scheduleService.FilterUpcoming(rows, nowMinute, reminderHorizonMinutes) {
			if sent[row.RowID] {
				continue
			}
			if err := sendReminder(cfg.Mail, row); err != nil {
				log.Error().Err(err).Str("row_id", row.RowID).Msg("failed to send reminder")
				continue
			}
			sent[row.RowID] = true
			log.Info().Str("row_id", row.RowID).Str("patient", row.PatientName).Msg("reminder sent")
		}
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Msg("reminder worker started")
	sweep()
	for {
		select {
		case <-ticker.C:
			sweep()
		case raw, ok := <-events:
			if !ok {
				log.Warn().Msg("event stream closed")
				return
			}
			var event messaging.Event
			if err := json.Unmarshal(raw, &event); err != nil {
				log.Warn().Err(err).Msg("dropping malformed schedule event")
				continue
			}
			// A schedule edit can move an appointment into the horizon.
			sweep()
		case <-quit:
			log.Info().Msg("reminder worker stopping")
			return
		}
	}
}

func sendReminder(mail config.MailConfig, row *model.Appointment) error {
	if mail.Host == "" || mail.To == "" {
		return fmt.Errorf("mail is not configured")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", mail.From)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", fmt.Sprintf("Upcoming: %s at %s", row.PatientName, row.StartTime))
	m.SetBody("text/plain", fmt.Sprintf(
		"Patient %s with %s at %s.\nRoom: %s\nAssistants: %s / %s / %s\n",
		row.PatientName, row.Doctor, row.StartTime, row.Room, row.First, row.Second, row.Third,
	))
	d := gomail.NewDialer(mail.Host, mail.Port, mail.User, mail.Password)
	return d.DialAndSend(m)
}
