package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/contasclaras/api/config"
	"github.com/contasclaras/api/internal/application"
	"github.com/contasclaras/api/internal/domain/billing"
	"github.com/contasclaras/api/internal/domain/entity"
	pginfra "github.com/contasclaras/api/internal/infrastructure/postgres"
	"github.com/contasclaras/api/pkg/helpers"
	"github.com/contasclaras/api/pkg/mailer"
	"github.com/contasclaras/api/pkg/pdf"
)

// statusLabel maps derived statuses to the Portuguese labels used in the PDF.
func statusLabel(s billing.DisplayStatus) string {
	switch s {
	case billing.Paid:
		return "Pago"
	case billing.Overdue:
		return "Vencido"
	case billing.DueSoon:
		return "Vence em breve"
	default:
		return "Em dia"
	}
}

func parseFilter(raw []byte) (billing.Filter, error) {
	var snap application.ExportFilter
	if err := json.Unmarshal(raw, &snap); err != nil {
		return billing.Filter{}, err
	}
	f := billing.Filter{
		Status:    snap.Status,
		Category:  snap.Category,
		Search:    snap.Search,
		Direction: entity.Direction(snap.Direction),
	}
	if snap.PaidFrom != "" && snap.PaidTo != "" {
		from, err := time.Parse("2006-01-02", snap.PaidFrom)
		if err != nil {
			return billing.Filter{}, err
		}
		to, err := time.Parse("2006-01-02", snap.PaidTo)
		if err != nil {
			return billing.Filter{}, err
		}
		f.PaidFrom, f.PaidTo = &from, &to
	}
	return f, nil
}

func main() {
	cfg := config.Load()
	if cfg.GCSBucket == "" {
		log.Fatal("GCS_BUCKET not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("gcs client: %v", err)
	}
	defer func() { _ = gcs.Close() }()

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(4, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQExportQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQExportQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	exportRepo := pginfra.NewExportRepository(pool)
	billRepo := pginfra.NewBillRepository(pool)
	userRepo := pginfra.NewUserRepository(pool)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job application.ExportJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 60*time.Second)
			if err := process(c, job.ExportID, exportRepo, billRepo, userRepo, gcs, cfg, mg); err != nil {
				cancel()
				log.Printf("export %s failed: %v", job.ExportID, err)
				// Do not requeue: the failure is recorded on the export row.
				_ = msg.Nack(false, false)
				continue
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("export worker listening on queue=%s", cfg.RabbitMQExportQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func process(
	ctx context.Context,
	exportID string,
	exports *pginfra.ExportRepository,
	bills *pginfra.BillRepository,
	users *pginfra.UserRepository,
	gcs *storage.Client,
	cfg *config.Config,
	mg *mailer.Mailgun,
) error {
	e, err := exports.Get(ctx, exportID)
	if err != nil {
		return err
	}
	if e.Status == entity.ExportDone {
		// Redelivered after a successful run; nothing to do.
		return nil
	}
	if err := exports.SetStatus(ctx, e.ID, entity.ExportProcessing); err != nil {
		return err
	}

	fail := func(reason string, cause error) error {
		_ = exports.MarkFailed(ctx, e.ID, reason)
		return cause
	}

	filter, err := parseFilter(e.FilterJSON)
	if err != nil {
		return fail("invalid filter snapshot", err)
	}

	all, err := bills.ListByUser(ctx, e.UserID)
	if err != nil {
		return fail("bill load failed", err)
	}
	matched := filter.Apply(all)

	now := time.Now()
	rows := make([]pdf.Row, 0, len(matched))
	for _, b := range matched {
		rows = append(rows, pdf.Row{
			Name:     b.CounterpartyName,
			Amount:   b.Amount,
			DueDate:  b.DueDate,
			Category: b.Category,
			Status:   statusLabel(billing.DeriveStatus(b, now)),
		})
	}

	content, err := pdf.Render("Relatório de Contas", rows)
	if err != nil {
		return fail("pdf render failed", err)
	}

	objectPath := "exports/" + e.UserID + "/" + e.ID + ".pdf"
	url, err := helpers.UploadObject(ctx, gcs, cfg.GCSBucket, objectPath, "application/pdf", bytes.NewReader(content))
	if err != nil {
		return fail("upload failed", err)
	}

	if err := exports.MarkDone(ctx, e.ID, url); err != nil {
		return err
	}

	if mg != nil {
		if u, uerr := users.GetByID(ctx, e.UserID); uerr == nil {
			if merr := mg.SendExportReady(ctx, u.Email, u.Name, url); merr != nil {
				log.Printf("export %s: notify email failed: %v", e.ID, merr)
			}
		}
	}
	return nil
}
