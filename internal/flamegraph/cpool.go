package flamegraph

import (
	"regexp"
	"strings"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

// prefixOffset is subtracted from the leading byte of a compressed pool
// entry to obtain the number of characters shared with the previous entry.
const prefixOffset = 32

// cpoolRegion matches the embedded constant pool declaration, one quoted
// string literal per line between the markers.
var cpoolRegion = regexp.MustCompile(`(?s)const cpool = \[(.*?)\];`)

// Pool is the ordered table of decompressed frame names, addressed by the
// zero-based keys that appear in rendering calls. It is never mutated after
// construction.
type Pool []string

// Lookup resolves a pool key. Keys outside the pool bounds report ok=false.
func (p Pool) Lookup(key int) (string, bool) {
	if key < 0 || key >= len(p) {
		return "", false
	}
	return p[key], true
}

// ExtractPool locates the constant pool declaration in the report document
// and returns the decompressed pool. A missing or empty pool region is a
// fatal format error: nothing downstream can be resolved without it.
func ExtractPool(document string) (Pool, error) {
	m := cpoolRegion.FindStringSubmatch(document)
	if m == nil {
		return nil, apperrors.Wrap(apperrors.CodeFormatError, "constant pool markers not found in report", nil)
	}

	raw := collectLiterals(m[1])
	if len(raw) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeFormatError, "constant pool region contains no string literals", nil)
	}

	return DecompressPool(raw), nil
}

// collectLiterals strips the wrapping quotes from the pool region, one
// literal per line. Lines that do not open a string literal are skipped.
// Degenerate lines such as a bare quote or an unterminated literal still
// occupy a pool slot as an empty entry; dropping them would shift every
// subsequent pool index.
func collectLiterals(region string) []string {
	var literals []string
	for _, line := range strings.Split(region, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "'") {
			continue
		}
		switch {
		case len(line) >= 3 && strings.HasSuffix(line, "',"):
			literals = append(literals, line[1:len(line)-2])
		case len(line) >= 2 && strings.HasSuffix(line, "'"):
			literals = append(literals, line[1:len(line)-1])
		default:
			literals = append(literals, "")
		}
	}
	return literals
}

// DecompressPool rebuilds the pool from its compressed literals.
//
// The first literal is stored verbatim. Each subsequent literal encodes a
// prefix length in its first byte (code point minus prefixOffset) counting
// characters reused from the previous decompressed entry, followed by the
// literal suffix. An empty literal decompresses to an empty string; there
// is no prefix byte to read in that case. Decompression is strictly
// sequential: entry i depends only on entry i-1.
func DecompressPool(raw []string) Pool {
	if len(raw) == 0 {
		return Pool{}
	}

	pool := make(Pool, 0, len(raw))
	pool = append(pool, raw[0])

	for i := 1; i < len(raw); i++ {
		entry := raw[i]
		if entry == "" {
			pool = append(pool, "")
			continue
		}

		prev := pool[i-1]
		prefixLen := int(entry[0]) - prefixOffset
		if prefixLen < 0 {
			prefixLen = 0
		}
		if prefixLen > len(prev) {
			prefixLen = len(prev)
		}

		pool = append(pool, prev[:prefixLen]+entry[1:])
	}

	return pool
}
