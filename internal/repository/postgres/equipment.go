package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, COALESCE(description, ''), condition, quantity, available, COALESCE(location, ''), created_on, updated_on, deleted_on`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	var createdOn, updatedOn time.Time
	var deletedOn sql.NullTime
	err := row.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.Description, &eq.Condition,
		&eq.Quantity, &eq.Available, &eq.Location, &createdOn, &updatedOn, &deletedOn)
	if err != nil {
		return nil, err
	}
	eq.CreatedOn = createdOn.Format(time.RFC3339)
	eq.UpdatedOn = updatedOn.Format(time.RFC3339)
	if deletedOn.Valid {
		s := deletedOn.Time.Format(time.RFC3339)
		eq.DeletedOn = &s
	}
	return eq, nil
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (name, category, description, condition, quantity, available, location, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	eq.CreatedOn = now.Format(time.RFC3339)
	eq.UpdatedOn = eq.CreatedOn
	return r.db.QueryRowContext(ctx, query, eq.Name, eq.Category, eq.Description, eq.Condition,
		eq.Quantity, eq.Available, eq.Location, now, now).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 AND deleted_on IS NULL`
	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return eq, err
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, category=$2, description=$3, condition=$4, quantity=$5, available=$6, location=$7, updated_on=$8
	          WHERE id=$9 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, eq.Name, eq.Category, eq.Description, eq.Condition,
		eq.Quantity, eq.Available, eq.Location, time.Now(), eq.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete soft-deletes the record. Existing borrow requests keep their
// denormalized snapshot, so history survives the delete.
func (r *equipmentRepository) Delete(ctx context.Context, id int32) error {
	query := `UPDATE equipment SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) List(ctx context.Context, f repository.EquipmentFilter) ([]domain.Equipment, int32, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE deleted_on IS NULL`

	args := []interface{}{}
	argIdx := 1
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query += fmt.Sprintf(" ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *eq)
	}
	return items, count, rows.Err()
}
