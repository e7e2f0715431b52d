// Package services contains the use-case layer: the ingestion pipeline,
// the two-stage retrieval engine, library management, and the retry and
// pacing policy wrapped around the embedding gateway. Services depend only
// on domain types and ports, never on concrete adapters.
package services
