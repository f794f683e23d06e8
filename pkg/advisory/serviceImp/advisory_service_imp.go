package serviceImp

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"cropwater/entities"
	"cropwater/pkg/advisory/repository"
	"cropwater/pkg/advisory/service"
	"cropwater/pkg/apierr"
)

const maxContext = 6000

type Svc struct{ r repository.AdvisoryRepository }

func New(r repository.AdvisoryRepository) *Svc { return &Svc{r: r} }

var _ service.AdvisoryService = (*Svc)(nil)

// chunkText cuts text into pieces of roughly maxRunes, preferring line ends
// and falling back to spaces for long unbroken paragraphs.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	var parts []string
	cur := strings.Builder{}
	count := 0
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
		count = 0
	}
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if (count >= maxRunes && r == '\n') || (count >= 2*maxRunes && r == ' ') {
			flush()
		}
	}
	flush()
	return parts
}

func (s *Svc) Ingest(title, tags, text, sourceURL string) (*entities.AdvisoryDocument, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, fmt.Errorf("%w: title is required", apierr.ErrBadRequest)
	}
	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return nil, 0, fmt.Errorf("%w: text is required", apierr.ErrBadRequest)
	}
	d := &entities.AdvisoryDocument{Title: title, Tags: strings.TrimSpace(tags), SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}
	rows := make([]entities.AdvisoryChunk, len(chs))
	for i := range chs {
		rows[i] = entities.AdvisoryChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// terms lowercases q and splits it into distinct words of two or more runes.
// Combining marks count as word characters so Tamil words stay whole.
func terms(q string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	}) {
		if len([]rune(w)) < 2 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// score counts term occurrences; every distinct term found adds a bonus so
// chunks covering more of the query rank first.
func score(text string, ts []string) int {
	low := strings.ToLower(text)
	sc := 0
	for _, t := range ts {
		if n := strings.Count(low, t); n > 0 {
			sc += n + 10
		}
	}
	return sc
}

func (s *Svc) Search(query string, k int) ([]service.Hit, error) {
	ts := terms(query)
	if len(ts) == 0 || k <= 0 {
		return nil, nil
	}
	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	var hits []service.Hit
	for _, ch := range chunks {
		if sc := score(ch.Text, ts); sc > 0 {
			hits = append(hits, service.Hit{AdvisoryChunk: ch, Score: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}

	meta, err := s.r.DocsByIDs(uniqueDocIDs(hits))
	if err != nil {
		return nil, err
	}
	for i := range hits {
		if d, ok := meta[hits[i].DocID]; ok {
			hits[i].DocTitle = d.Title
			hits[i].SourceURL = d.SourceURL
		}
	}
	return hits, nil
}

func (s *Svc) Articles(query string, n int) ([]entities.ArticleRef, string, error) {
	hits, err := s.Search(query, 3*n)
	if err != nil || len(hits) == 0 {
		return nil, "", err
	}
	var refs []entities.ArticleRef
	seen := map[uint]bool{}
	var sb strings.Builder
	for _, h := range hits {
		if sb.Len() < maxContext {
			sb.WriteString("\n---\n")
			sb.WriteString(h.Text)
		}
		if seen[h.DocID] || len(refs) >= n {
			continue
		}
		seen[h.DocID] = true
		refs = append(refs, entities.ArticleRef{Title: h.DocTitle, URL: h.SourceURL})
	}
	return refs, sb.String(), nil
}

func uniqueDocIDs(hs []service.Hit) []uint {
	seen := map[uint]struct{}{}
	var ids []uint
	for _, h := range hs {
		if _, ok := seen[h.DocID]; !ok {
			seen[h.DocID] = struct{}{}
			ids = append(ids, h.DocID)
		}
	}
	return ids
}
