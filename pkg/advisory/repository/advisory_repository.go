package repository

import "cropwater/entities"

type AdvisoryRepository interface {
	CreateDoc(*entities.AdvisoryDocument) error
	BulkInsertChunks([]entities.AdvisoryChunk) error
	AllChunks() ([]entities.AdvisoryChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDocument, error)
}
