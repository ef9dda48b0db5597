package harness

import "github.com/google/uuid"

// TokenGenerator produces run tokens tagging one scenario execution.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens. The
// embedded timestamp keeps tokens sortable by creation time, which is
// convenient when collating results from repeated runs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 as a hyphenated string. Panics if UUID
// generation fails, which requires a broken entropy source.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokenGenerator returns predetermined tokens in order. Tests pin
// tokens so traces compare byte-identically against golden files.
type FixedTokenGenerator struct {
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator over the given tokens.
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next token. Panics once all tokens are consumed;
// exhaustion means the test ran more scenarios than it budgeted for.
func (g *FixedTokenGenerator) Generate() string {
	if g.idx >= len(g.tokens) {
		panic("FixedTokenGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
