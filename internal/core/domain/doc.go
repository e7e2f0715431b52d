// Package domain holds the core types of the docchat retrieval engine:
// documents, chunks, centroid index entries, search filters, the error
// taxonomy, and the cosine similarity used for ranking throughout.
package domain
