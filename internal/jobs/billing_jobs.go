package jobs

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/logger"
)

// overdueCutoffBucket returns the latest month bucket whose grace period has
// fully elapsed at now: a payment for bucket B is overdue once
// end(B) + graceDays days lies in the past. The month arithmetic starts from
// the first of the target month; subtracting a month from day 29-31 directly
// would normalize into the wrong month.
func overdueCutoffBucket(now time.Time, graceDays int) string {
	target := now.UTC().AddDate(0, 0, -graceDays)
	monthStart := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, time.UTC)
	return monthStart.AddDate(0, -1, 0).Format("2006-01")
}

// MarkOverduePayments flips pending and in-review payments whose bucket month
// plus grace period has elapsed to overdue. The sweep is idempotent; running
// it twice changes nothing the second time.
func (jr *JobRunner) MarkOverduePayments() {
	jr.runWithRecovery("MarkOverduePayments", func() {
		ctx := context.Background()

		bucket := overdueCutoffBucket(time.Now(), jr.config.Billing.GraceDays)
		n, err := jr.store.PaymentRepository.MarkOverdueUpTo(ctx, bucket)
		if err != nil {
			logger.Error("Failed to mark overdue payments", "error", err)
			return
		}

		logger.Info("Marked overdue payments", "cutoff_bucket", bucket, "count", n)
	})
}

// SendOverdueNotices emails the tenant of every overdue rent payment.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()

		enriched, err := jr.services.Billing.ListEnrichedPayments(ctx, domain.PaymentFilter{
			Type:   domain.PaymentTypeRent,
			Status: domain.PaymentStatusOverdue,
		})
		if err != nil {
			logger.Error("Failed to list overdue payments", "error", err)
			return
		}

		sent := 0
		for _, e := range enriched {
			if e.Tenant == nil || e.Tenant.Email == "" || e.Room == nil {
				continue
			}
			err := jr.services.Email.SendOverdueNotice(ctx,
				e.Tenant.Email, e.Tenant.Name,
				e.Room.Name, e.Payment.MonthYear, e.Payment.Amount)
			if err != nil {
				logger.Error("Failed to send overdue notice",
					"payment_id", e.Payment.ID,
					"tenant_id", e.Tenant.ID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue notices sent", "count", sent, "overdue_total", len(enriched))
	})
}
