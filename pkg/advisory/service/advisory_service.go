package service

import "cropwater/entities"

// Hit is a matching chunk with its document's title and source.
type Hit struct {
	entities.AdvisoryChunk
	Score     int    `json:"score"`
	DocTitle  string `json:"doc_title,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

type AdvisoryService interface {
	Ingest(title, tags, text, sourceURL string) (*entities.AdvisoryDocument, int, error)
	Search(query string, k int) ([]Hit, error)
	// Articles returns up to n distinct documents matching query and the
	// matched text, capped for use as prompt context.
	Articles(query string, n int) ([]entities.ArticleRef, string, error)
}
