package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Cosine returns the cosine similarity of a and b over their shared prefix
// of length min(len(a), len(b)). It returns exactly 0 when either input is
// empty or has zero magnitude; it never returns NaN. That zero is a defined
// edge-case policy, not an error path.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, ma, mb float64
	for i := 0; i < n; i++ {
		x, y := a[i], b[i]
		dot += x * y
		ma += x * x
		mb += y * y
	}
	if ma == 0 || mb == 0 {
		return 0
	}
	return dot / (math.Sqrt(ma) * math.Sqrt(mb))
}

// EncodeVector serializes a vector as JSON text, the storage format of the
// chunks.embedding and doc_index.centroid columns.
func EncodeVector(v []float64) string {
	if len(v) == 0 {
		return "[]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		// A []float64 of finite values cannot fail to marshal; NaN or Inf
		// would, and must never reach storage.
		panic(fmt.Sprintf("encoding vector: %v", err))
	}
	return string(data)
}

// DecodeVector parses a vector previously produced by EncodeVector.
func DecodeVector(s string) ([]float64, error) {
	var v []float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("decoding vector: %w", err)
	}
	return v, nil
}
