package service

import "cropwater/entities"

type FieldService interface {
	CreateField(f *entities.Field) (*entities.Field, error)
	GetFieldByID(id uint, uid string) (*entities.Field, error)
	ListFields(uid string) ([]entities.Field, error)
}
