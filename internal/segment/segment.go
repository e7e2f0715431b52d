// Package segment splits raw text into overlapping fixed-length windows,
// the unit of embedding.
package segment

// DefaultTargetSize is the default window length in bytes.
const DefaultTargetSize = 500

// DefaultOverlap is the default number of bytes shared between
// consecutive windows.
const DefaultOverlap = 50

// Split slides a window of length targetSize across text with step
// targetSize-overlap. Consecutive full-length windows share exactly
// overlap bytes at the boundary.
//
// Degenerate inputs are defined, not rejected: overlap is clamped into
// [0, targetSize); text no longer than targetSize (including empty text)
// comes back as a single chunk; targetSize <= 0 yields the whole input as
// one chunk. Split is a pure function of its arguments.
func Split(text string, targetSize, overlap int) []string {
	if targetSize <= 0 || len(text) <= targetSize {
		return []string{text}
	}

	if overlap < 0 {
		overlap = 0
	}
	if overlap >= targetSize {
		overlap = targetSize - 1
	}

	step := targetSize - overlap
	chunks := make([]string, 0, len(text)/step+1)
	for start := 0; start < len(text); start += step {
		end := start + targetSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}
