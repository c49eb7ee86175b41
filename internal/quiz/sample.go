package quiz

import (
	"math/rand"

	"lexiquiz/internal/catalog"
)

// DefaultQuestionCount is the number of questions in a session.
const DefaultQuestionCount = 20

// Question is a catalog entry plus per-session attempt tracking.
type Question struct {
	Entry     *catalog.Entry
	Attempted bool
}

// Sample picks count distinct entries in uniformly random order. When the
// catalog is smaller than count the sample is clamped to the catalog size.
func Sample(entries []*catalog.Entry, count int, rng *rand.Rand) []*Question {
	if count <= 0 || len(entries) == 0 {
		return nil
	}
	pool := make([]*catalog.Entry, len(entries))
	copy(pool, entries)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	questions := make([]*Question, 0, count)
	for _, entry := range pool[:count] {
		questions = append(questions, &Question{Entry: entry})
	}
	return questions
}
