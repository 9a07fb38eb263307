package unitofwork

import (
	"context"

	"quicknotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	PinRepository() contract.PinRepository
	NoteEventRepository() contract.NoteEventRepository
}
