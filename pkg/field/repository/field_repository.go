package repository

import "cropwater/entities"

type FieldRepository interface {
	Create(f *entities.Field) error
	FindByID(id uint, uid string) (*entities.Field, error)
	ListByUser(uid string) ([]entities.Field, error)
	// Get loads a field regardless of owner; used by background jobs.
	Get(id uint) (*entities.Field, error)
}
