package jobs

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
)

// MarkOverdueRentals flags active rentals whose due date has passed. The
// order stays ACTIVE so it can still be finalized or cancelled; overdue is
// an annotation, not a state transition.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rental_orders
			SET overdue = TRUE,
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND overdue = FALSE
			  AND due_date < $1
			RETURNING id, client_name, due_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id         string
				clientName string
				dueDate    string
			)
			if err := rows.Scan(&id, &clientName, &dueDate); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++
			logger.Debug("Marked rental as overdue",
				"order_id", id,
				"client", clientName,
				"due_date", dueDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.JobRun("MarkOverdueRentals", count, nil)
	})
}

// SendOverdueReminders mails the operator inbox a digest of every rental
// currently flagged overdue. One digest per run, not one mail per order.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		if jr.config.Email.OperatorInbox == "" || !jr.config.Email.SendOverdueMail {
			logger.Info("Overdue reminders disabled, skipping")
			return
		}

		rows, err := jr.db.QueryContext(ctx, `
			SELECT id FROM rental_orders
			WHERE status = 'ACTIVE' AND overdue = TRUE
			ORDER BY due_date ASC
		`)
		if err != nil {
			logger.Error("Failed to query overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan overdue rental id", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rental ids", "error", err)
			return
		}

		if len(ids) == 0 {
			logger.Info("No overdue rentals, skipping digest")
			return
		}

		orders := make([]domain.RentalOrder, 0, len(ids))
		for _, id := range ids {
			order, err := jr.store.RentalRepository.GetByID(ctx, id)
			if err != nil {
				logger.Error("Failed to load overdue rental", "order_id", id, "error", err)
				continue
			}
			orders = append(orders, *order)
		}

		err = jr.services.Email.SendOverdueDigest(ctx, jr.config.Email.OperatorInbox, orders)
		logger.JobRun("SendOverdueReminders", len(orders), err)
	})
}
