package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"dorm-management-backend/internal/lifecycle"
)

// Billing runs the monthly invoice generation on a cron schedule. It is
// the external trigger the lifecycle core expects; generation itself is
// transactional and idempotent, so an overlapping or repeated fire is
// harmless.
type Billing struct {
	sched    gocron.Scheduler
	invoices *lifecycle.InvoiceService
}

// NewBilling creates the billing scheduler with one cron job.
func NewBilling(invoices *lifecycle.InvoiceService, cronExpr string) (*Billing, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	b := &Billing{sched: sched, invoices: invoices}
	if _, err := sched.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(b.run),
	); err != nil {
		return nil, err
	}
	return b, nil
}

// Start launches the scheduler in the background.
func (b *Billing) Start() {
	b.sched.Start()
	log.Printf("billing scheduler started with %d job(s)", len(b.sched.Jobs()))
}

// Shutdown stops the scheduler and waits for a running job to finish.
func (b *Billing) Shutdown() error {
	return b.sched.Shutdown()
}

// run generates invoices for the current month.
func (b *Billing) run() {
	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created, err := b.invoices.Generate(ctx, month, year)
	if err != nil {
		log.Printf("scheduled invoice generation for %d/%d failed: %v", month, year, err)
		return
	}
	log.Printf("scheduled invoice generation for %d/%d created %d invoice(s)", month, year, len(created))
}
