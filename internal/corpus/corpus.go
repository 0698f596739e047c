package corpus

import (
	"context"
	"strings"
	"sync"

	"github.com/SAP-F-2025/trust-service/internal/verifier"
)

// Corpus is an in-memory, subject-indexed store of published quiz texts
// used by the plagiarism similarity check. It is safe for concurrent use.
type Corpus struct {
	mu      sync.RWMutex
	entries map[string][]verifier.CorpusEntry // keyed by normalized subject
}

func New() *Corpus {
	return &Corpus{entries: make(map[string][]verifier.CorpusEntry)}
}

// Add records a corpus entry under the given subject.
func (c *Corpus) Add(subject string, entry verifier.CorpusEntry) {
	key := normalizeSubject(subject)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append(c.entries[key], entry)
}

// Entries returns the stored entries for a subject. It implements
// verifier.CorpusSource.
func (c *Corpus) Entries(ctx context.Context, subject string) ([]verifier.CorpusEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	stored := c.entries[normalizeSubject(subject)]
	out := make([]verifier.CorpusEntry, len(stored))
	copy(out, stored)
	return out, nil
}

// Len reports the total number of stored entries across subjects.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, list := range c.entries {
		total += len(list)
	}
	return total
}

func normalizeSubject(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}
