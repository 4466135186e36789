// Package chunker splits composed documents into overlapping fixed-size
// chunks, preferring natural break points over hard character cuts.
package chunker

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 3072

// DefaultChunkOverlap is the default number of characters each chunk shares
// with the tail of its predecessor.
const DefaultChunkOverlap = 300

// boundaries are the split points tried when adjusting a cut, in order of
// preference: paragraph break, line break, sentence end, word boundary.
var boundaries = []string{"\n\n", "\n", ". ", "! ", "? ", " "}

// Chunker splits text into overlapping chunks. Sizes are measured in runes
// so multi-byte characters are never split mid-sequence.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into consecutive chunks no longer than the configured
// chunk size, where each chunk after the first repeats exactly the overlap
// length from the tail of its predecessor. Dropping that prefix from every
// chunk after the first reconstructs the input byte for byte. Empty input
// produces no chunks; no produced chunk is ever empty.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	if total <= c.chunkSize {
		return []string{text}
	}

	estimated := total/(c.chunkSize-c.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < total {
		end := start + c.chunkSize
		if end >= total {
			end = total
		} else {
			end = c.adjustCut(runes, start, end)
		}

		chunks = append(chunks, string(runes[start:end]))
		if end == total {
			break
		}
		start = end - c.overlap
	}

	return chunks
}

// adjustCut moves a tentative cut position backwards to the nearest natural
// boundary within a bounded window. The window never reaches back past
// start+overlap+1, which keeps the forward step positive and the overlap
// between neighbouring chunks exact.
func (c *Chunker) adjustCut(runes []rune, start, end int) int {
	window := c.chunkSize / 5
	if maxBack := end - (start + c.overlap + 1); window > maxBack {
		window = maxBack
	}
	if window <= 0 {
		return end
	}
	minEnd := end - window

	for _, sep := range boundaries {
		sepRunes := []rune(sep)
		for i := end - len(sepRunes); i >= minEnd; i-- {
			if matchAt(runes, i, sepRunes) {
				return i + len(sepRunes)
			}
		}
	}

	return end
}

// matchAt reports whether sep occurs in runes starting at position i.
func matchAt(runes []rune, i int, sep []rune) bool {
	if i < 0 || i+len(sep) > len(runes) {
		return false
	}
	for j, r := range sep {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
