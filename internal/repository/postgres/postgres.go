package postgres

import (
	"database/sql"
	"equiplend-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.EquipmentRepository
	repository.BorrowRequestRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		EquipmentRepository:     NewEquipmentRepository(db),
		BorrowRequestRepository: NewBorrowRequestRepository(db),
	}
}
