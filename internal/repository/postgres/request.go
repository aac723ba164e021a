package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/logger"
	"equiplend-backend/internal/repository"
)

type borrowRequestRepository struct {
	db *sql.DB
}

func NewBorrowRequestRepository(db *sql.DB) repository.BorrowRequestRepository {
	return &borrowRequestRepository{db: db}
}

const requestColumns = `id, requester_id, requester_name, requester_email, equipment_id, equipment_name,
	from_date, to_date, COALESCE(purpose, ''), status,
	decided_by_id, COALESCE(decided_by_name, ''), decided_on, COALESCE(decision_notes, ''),
	COALESCE(return_condition, ''), COALESCE(return_notes, ''), returned_by_id, COALESCE(returned_by_name, ''), returned_on,
	created_on, updated_on`

func scanRequest(row interface{ Scan(...any) error }) (*domain.BorrowRequest, error) {
	req := &domain.BorrowRequest{}
	var fromDate, toDate, createdOn, updatedOn time.Time
	var decidedOn, returnedOn sql.NullTime
	var decidedByID, returnedByID sql.NullInt32
	err := row.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.RequesterEmail,
		&req.EquipmentID, &req.EquipmentName, &fromDate, &toDate, &req.Purpose, &req.Status,
		&decidedByID, &req.DecidedByName, &decidedOn, &req.DecisionNotes,
		&req.ReturnCondition, &req.ReturnNotes, &returnedByID, &req.ReturnedByName, &returnedOn,
		&createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	req.FromDate = fromDate.Format("2006-01-02")
	req.ToDate = toDate.Format("2006-01-02")
	req.CreatedOn = createdOn.Format(time.RFC3339)
	req.UpdatedOn = updatedOn.Format(time.RFC3339)
	if decidedByID.Valid {
		id := decidedByID.Int32
		req.DecidedByID = &id
	}
	if returnedByID.Valid {
		id := returnedByID.Int32
		req.ReturnedByID = &id
	}
	if decidedOn.Valid {
		s := decidedOn.Time.Format(time.RFC3339)
		req.DecidedOn = &s
	}
	if returnedOn.Valid {
		s := returnedOn.Time.Format(time.RFC3339)
		req.ReturnedOn = &s
	}
	return req, nil
}

func (r *borrowRequestRepository) Create(ctx context.Context, req *domain.BorrowRequest) error {
	query := `INSERT INTO borrow_requests (requester_id, requester_name, requester_email, equipment_id, equipment_name, from_date, to_date, purpose, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	req.CreatedOn = now.Format(time.RFC3339)
	req.UpdatedOn = req.CreatedOn
	return r.db.QueryRowContext(ctx, query, req.RequesterID, req.RequesterName, req.RequesterEmail,
		req.EquipmentID, req.EquipmentName, req.FromDate, req.ToDate, req.Purpose, req.Status, now, now).Scan(&req.ID)
}

func (r *borrowRequestRepository) GetByID(ctx context.Context, id int32) (*domain.BorrowRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return req, err
}

// Approve flips pending→approved and consumes one unit of the equipment's
// availability in a single transaction. The decrement is a conditional
// update (available > 0), so two approvals racing on the last unit commit
// exactly one decrement; the loser gets ErrCapacityExceeded and the request
// stays pending.
func (r *borrowRequestRepository) Approve(ctx context.Context, requestID int32, d domain.Decision) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE borrow_requests SET status=$1, decided_by_id=$2, decided_by_name=$3, decided_on=$4, decision_notes=$5, updated_on=$4
		 WHERE id=$6 AND status=$7`,
		domain.RequestStatusApproved, d.DeciderID, d.DeciderName, now, d.Notes, requestID, domain.RequestStatusPending)
	if err != nil {
		return err
	}
	if err := r.requireTransition(ctx, tx, res, requestID); err != nil {
		return err
	}

	var equipmentID int32
	if err := tx.QueryRowContext(ctx, `SELECT equipment_id FROM borrow_requests WHERE id=$1`, requestID).Scan(&equipmentID); err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE equipment SET available = available - 1, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL AND available > 0`,
		now, equipmentID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Rolling back leaves the request pending, as required.
		return domain.ErrCapacityExceeded
	}

	return tx.Commit()
}

func (r *borrowRequestRepository) Reject(ctx context.Context, requestID int32, d domain.Decision) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE borrow_requests SET status=$1, decided_by_id=$2, decided_by_name=$3, decided_on=$4, decision_notes=$5, updated_on=$4
		 WHERE id=$6 AND status=$7`,
		domain.RequestStatusRejected, d.DeciderID, d.DeciderName, now, d.Notes, requestID, domain.RequestStatusPending)
	if err != nil {
		return err
	}
	return r.requireTransition(ctx, nil, res, requestID)
}

// MarkReturned flips approved→returned, records the admin who processed
// the return, and restores the unit consumed at approval. The increment is
// conditional on available < quantity; if the admin shrank the quantity in
// the meantime the restore is skipped so the [0, quantity] invariant holds.
func (r *borrowRequestRepository) MarkReturned(ctx context.Context, requestID int32, d domain.Decision, condition, notes string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE borrow_requests SET status=$1, return_condition=$2, return_notes=$3, returned_by_id=$4, returned_by_name=$5, returned_on=$6, updated_on=$6
		 WHERE id=$7 AND status=$8`,
		domain.RequestStatusReturned, condition, notes, d.DeciderID, d.DeciderName, now, requestID, domain.RequestStatusApproved)
	if err != nil {
		return err
	}
	if err := r.requireTransition(ctx, tx, res, requestID); err != nil {
		return err
	}

	var equipmentID int32
	if err := tx.QueryRowContext(ctx, `SELECT equipment_id FROM borrow_requests WHERE id=$1`, requestID).Scan(&equipmentID); err != nil {
		return err
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE equipment SET available = available + 1, updated_on=$1 WHERE id=$2 AND available < quantity`,
		now, equipmentID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.Warn("return did not restore availability", "request_id", requestID, "equipment_id", equipmentID)
	}

	return tx.Commit()
}

// requireTransition turns a zero-row conditional status update into the
// right domain error: ErrNotFound when the request does not exist,
// ErrInvalidState when it exists in another status.
func (r *borrowRequestRepository) requireTransition(ctx context.Context, tx *sql.Tx, res sql.Result, requestID int32) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	var status string
	q := r.db.QueryRowContext
	if tx != nil {
		q = tx.QueryRowContext
	}
	err = q(ctx, `SELECT status FROM borrow_requests WHERE id=$1`, requestID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: request is %s", domain.ErrInvalidState, status)
}

func (r *borrowRequestRepository) ListByRequester(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.BorrowRequest, int32, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests WHERE requester_id = $1`

	args := []interface{}{requesterID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	return r.listPage(ctx, query, args, argIdx, page, pageSize)
}

func (r *borrowRequestRepository) ListAll(ctx context.Context, f repository.RequestFilter) ([]domain.BorrowRequest, int32, error) {
	query := `SELECT ` + requestColumns + ` FROM borrow_requests WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.RequesterName != "" {
		query += fmt.Sprintf(" AND requester_name ILIKE $%d", argIdx)
		args = append(args, "%"+f.RequesterName+"%")
		argIdx++
	}
	if f.EquipmentName != "" {
		query += fmt.Sprintf(" AND equipment_name ILIKE $%d", argIdx)
		args = append(args, "%"+f.EquipmentName+"%")
		argIdx++
	}
	return r.listPage(ctx, query, args, argIdx, f.Page, f.PageSize)
}

// listPage appends the shared count + order + page plumbing. Newest first,
// id ascending on creation-time ties for a stable order.
func (r *borrowRequestRepository) listPage(ctx context.Context, query string, args []interface{}, argIdx int, page, pageSize int32) ([]domain.BorrowRequest, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.BorrowRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *req)
	}
	return requests, count, rows.Err()
}

func (r *borrowRequestRepository) CountByStatus(ctx context.Context) (*domain.RequestStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM borrow_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.RequestStats{}
	for rows.Next() {
		var status string
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.Total += n
		switch domain.RequestStatus(status) {
		case domain.RequestStatusPending:
			stats.Pending = n
		case domain.RequestStatusApproved:
			stats.Approved = n
		case domain.RequestStatusRejected:
			stats.Rejected = n
		case domain.RequestStatusReturned:
			stats.Returned = n
		}
	}
	return stats, rows.Err()
}
