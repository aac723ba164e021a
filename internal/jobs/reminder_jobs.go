package jobs

import (
	"context"
	"time"

	"equiplend-backend/internal/logger"
)

type reminderRow struct {
	RequestID     int
	RequesterName string
	Email         string
	EquipmentName string
	ToDate        string
}

// SendDueReminders emails requesters whose approved loans are due tomorrow.
// Loans stay in approved status; due dates never change request state.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

		query := `
			SELECT br.id, br.requester_name, u.email, br.equipment_name, to_char(br.to_date, 'YYYY-MM-DD')
			FROM borrow_requests br
			JOIN users u ON u.id = br.requester_id
			WHERE br.status = 'approved'
			  AND br.to_date = $1
		`

		rows, err := jr.queryReminderRows(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to query due loans", "error", err)
			return
		}

		sent := 0
		for _, row := range rows {
			if err := jr.email.SendDueReminder(ctx, row.Email, row.RequesterName, row.EquipmentName, row.ToDate); err != nil {
				logger.Error("Failed to send due reminder",
					"request_id", row.RequestID,
					"email", row.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent due reminders", "count", sent)
	})
}

// SendOverdueNotices emails requesters whose approved loans are past due.
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()
		today := time.Now().Format("2006-01-02")

		query := `
			SELECT br.id, br.requester_name, u.email, br.equipment_name, to_char(br.to_date, 'YYYY-MM-DD')
			FROM borrow_requests br
			JOIN users u ON u.id = br.requester_id
			WHERE br.status = 'approved'
			  AND br.to_date < $1
		`

		rows, err := jr.queryReminderRows(ctx, query, today)
		if err != nil {
			logger.Error("Failed to query overdue loans", "error", err)
			return
		}

		sent := 0
		for _, row := range rows {
			if err := jr.email.SendOverdueNotice(ctx, row.Email, row.RequesterName, row.EquipmentName, row.ToDate); err != nil {
				logger.Error("Failed to send overdue notice",
					"request_id", row.RequestID,
					"email", row.Email,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue notices", "count", sent)
	})
}

func (jr *JobRunner) queryReminderRows(ctx context.Context, query string, date string) ([]reminderRow, error) {
	rows, err := jr.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []reminderRow
	for rows.Next() {
		var row reminderRow
		if err := rows.Scan(&row.RequestID, &row.RequesterName, &row.Email, &row.EquipmentName, &row.ToDate); err != nil {
			logger.Error("Failed to scan loan row", "error", err)
			continue
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
