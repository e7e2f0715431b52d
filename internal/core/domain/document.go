package domain

// DocType identifies how a document's text was obtained.
type DocType string

// Supported document types.
const (
	DocTypeText  DocType = "text"
	DocTypePDF   DocType = "pdf"
	DocTypeImage DocType = "image"
)

// Valid reports whether t is one of the supported document types.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeText, DocTypePDF, DocTypeImage:
		return true
	}
	return false
}

// Document is a single ingested document's metadata row.
// ChunkCount is the only field that changes after creation: it starts at
// zero and is set once all chunks have been embedded and persisted.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, usually the original file name.
	Title string

	// Size is the declared byte size of the source file.
	Size int64

	// ChunkCount is the number of persisted chunks. Zero until ingestion
	// completes.
	ChunkCount int

	// Date is the creation time in epoch milliseconds.
	Date int64

	// Type records which extractor produced the document's text.
	Type DocType
}

// Chunk is the unit of embedding and retrieval: a bounded substring of a
// document together with its serialized embedding vector. Chunks are
// immutable once inserted and are removed only by deleting their document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID references the parent Document.
	DocumentID string

	// Seq is the ordinal position within the document.
	Seq int

	// Content is the chunk text.
	Content string

	// Embedding is the vector serialized as JSON text. Decode with
	// DecodeVector.
	Embedding string
}

// DocCentroid is the per-document entry of the centroid index: the
// elementwise mean of the document's chunk embeddings. It is upserted once
// per ingestion and fully recomputable from the chunks table.
type DocCentroid struct {
	// DocumentID references the Document (1:1).
	DocumentID string

	// Centroid is the mean vector serialized as JSON text.
	Centroid string

	// ChunkCount is the number of chunks the centroid averages over.
	ChunkCount int
}
