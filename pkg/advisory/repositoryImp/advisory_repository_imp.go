package repositoryImp

import (
	"gorm.io/gorm"

	"cropwater/entities"
	"cropwater/pkg/advisory/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdvisoryRepository { return &repo{db} }

func (r *repo) CreateDoc(d *entities.AdvisoryDocument) error { return r.db.Create(d).Error }

func (r *repo) BulkInsertChunks(cs []entities.AdvisoryChunk) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&cs, 100).Error
}

func (r *repo) AllChunks() ([]entities.AdvisoryChunk, error) {
	var cs []entities.AdvisoryChunk
	return cs, r.db.Order("doc_id ASC, ord ASC").Find(&cs).Error
}

func (r *repo) DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDocument, error) {
	if len(ids) == 0 {
		return map[uint]entities.AdvisoryDocument{}, nil
	}
	var ds []entities.AdvisoryDocument
	if err := r.db.Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.AdvisoryDocument, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
