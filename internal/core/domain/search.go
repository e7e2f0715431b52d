package domain

// SearchFilter restricts which documents (and therefore which chunks and
// centroids) a store query considers. Zero values mean "no restriction".
// Filters are translated directly into parameterized queries; nothing is
// ever inferred from the query text itself.
type SearchFilter struct {
	// DocType restricts to documents of one type when non-empty.
	DocType DocType

	// DateStart is the inclusive lower bound on Document.Date (epoch ms).
	DateStart int64

	// DateEnd is the inclusive upper bound on Document.Date (epoch ms).
	DateEnd int64

	// Limit caps the number of returned rows when positive.
	Limit int
}

// MatchesDocument reports whether doc passes the type and date predicates.
// Limit is a row cap, not a predicate, and is ignored here.
func (f SearchFilter) MatchesDocument(doc Document) bool {
	if f.DocType != "" && doc.Type != f.DocType {
		return false
	}
	if f.DateStart != 0 && doc.Date < f.DateStart {
		return false
	}
	if f.DateEnd != 0 && doc.Date > f.DateEnd {
		return false
	}
	return true
}

// RetrieveOptions tunes a top-k retrieval call. The type and date fields
// mirror SearchFilter; MaxChunksToScan bounds the candidate pool after
// document-level filtering and shortlisting, purely as a performance guard
// for large libraries.
type RetrieveOptions struct {
	DocType         DocType
	DateStart       int64
	DateEnd         int64
	MaxChunksToScan int
}

// Filter returns the store-level filter equivalent of the options.
func (o RetrieveOptions) Filter() SearchFilter {
	return SearchFilter{
		DocType:   o.DocType,
		DateStart: o.DateStart,
		DateEnd:   o.DateEnd,
	}
}

// ChunkWithDoc is a chunk joined with the parent document metadata needed
// for ranking and display.
type ChunkWithDoc struct {
	Chunk

	// DocDate is the parent document's Date (epoch ms).
	DocDate int64

	// DocType is the parent document's type.
	DocType DocType
}

// RankedChunk is a retrieval result: a chunk plus its similarity score
// against the query embedding.
type RankedChunk struct {
	ChunkWithDoc

	// Score is the cosine similarity in [-1, 1].
	Score float64
}
