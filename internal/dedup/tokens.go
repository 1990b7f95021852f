// Package dedup implements the crate writer's three deduplicating tables:
// the token table, the field table, and the write-data cache that lets
// identical out-of-line payloads share a single file offset (spec.md §3,
// §9 "never compare by identity").
package dedup

// Tokens is the ordered, deduplicating token table. Index 0 is a
// legitimate token; a side map enforces uniqueness.
type Tokens struct {
	byString map[string]int32
	list     []string
}

// NewTokens creates an empty token table.
func NewTokens() *Tokens {
	return &Tokens{byString: make(map[string]int32)}
}

// NewTokensWithCapacity creates an empty token table pre-sized for roughly
// capacity distinct tokens.
func NewTokensWithCapacity(capacity int) *Tokens {
	return &Tokens{
		byString: make(map[string]int32, capacity),
		list:     make([]string, 0, capacity),
	}
}

// Intern returns the stable index for s, assigning the next index and
// appending to the table on first occurrence.
func (t *Tokens) Intern(s string) int32 {
	if idx, ok := t.byString[s]; ok {
		return idx
	}
	idx := int32(len(t.list))
	t.byString[s] = idx
	t.list = append(t.list, s)

	return idx
}

// List returns the tokens in insertion order. The caller must not modify
// the returned slice.
func (t *Tokens) List() []string {
	return t.list
}

// Len returns the number of interned tokens.
func (t *Tokens) Len() int {
	return len(t.list)
}

// At returns the token string at the given absolute index, or "" if the
// index is out of range (mirrors crate_file.py's getTokenStr tolerance).
func (t *Tokens) At(index int32) string {
	if index < 0 {
		index = -index
	}
	if int(index) < len(t.list) {
		return t.list[index]
	}

	return ""
}

// SetList replaces the table contents wholesale, used by the reader after
// inflating the TOKENS section.
func (t *Tokens) SetList(tokens []string) {
	t.list = tokens
	t.byString = make(map[string]int32, len(tokens))
	for i, tok := range tokens {
		t.byString[tok] = int32(i)
	}
}
