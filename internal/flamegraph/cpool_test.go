package flamegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

func TestDecompressPool_Basic(t *testing.T) {
	// chr(32+1) = '!' encodes a prefix length of 1.
	pool := DecompressPool([]string{"alpha", "!xyz"})

	require.Len(t, pool, 2)
	assert.Equal(t, "alpha", pool[0])
	assert.Equal(t, "axyz", pool[1])
}

func TestDecompressPool_Chain(t *testing.T) {
	// Each entry depends only on its immediate predecessor.
	raw := []string{
		"com/example/Server.run",
		string(rune(32+12)) + "Worker.poll", // keep "com/example/"
		string(rune(32+19)) + "send",        // keep "com/example/Worker."
	}

	pool := DecompressPool(raw)

	require.Len(t, pool, 3)
	assert.Equal(t, "com/example/Server.run", pool[0])
	assert.Equal(t, "com/example/Worker.poll", pool[1])
	assert.Equal(t, "com/example/Worker.send", pool[2])
}

func TestDecompressPool_EmptyLiteral(t *testing.T) {
	// An empty literal short-circuits to an empty string; there is no
	// prefix byte to read.
	pool := DecompressPool([]string{"alpha", "", "!bc"})

	require.Len(t, pool, 3)
	assert.Equal(t, "", pool[1])
	// Entry after the empty one takes its prefix from the empty string.
	assert.Equal(t, "bc", pool[2])
}

func TestDecompressPool_PrefixLongerThanPredecessor(t *testing.T) {
	// chr(32+10) asks for 10 chars but the predecessor has 2.
	pool := DecompressPool([]string{"ab", string(rune(32+10)) + "cd"})

	require.Len(t, pool, 2)
	assert.Equal(t, "abcd", pool[1])
}

func TestDecompressPool_Empty(t *testing.T) {
	assert.Empty(t, DecompressPool(nil))
	assert.Empty(t, DecompressPool([]string{}))
}

func TestDecompressPool_RoundTrip(t *testing.T) {
	originals := []string{
		"java/lang/Thread.run",
		"java/lang/String.indexOf",
		"java/util/HashMap.get",
		"",
		"sun/nio/ch/SocketChannelImpl.read",
	}

	encoded := encodePool(originals)
	decoded := DecompressPool(encoded)

	require.Len(t, decoded, len(originals))
	for i, want := range originals {
		assert.Equal(t, want, decoded[i])
	}
}

// encodePool applies the inverse of DecompressPool for round-trip testing.
func encodePool(entries []string) []string {
	encoded := make([]string, 0, len(entries))
	for i, entry := range entries {
		if i == 0 {
			encoded = append(encoded, entry)
			continue
		}
		if entry == "" {
			encoded = append(encoded, "")
			continue
		}
		prev := entries[i-1]
		shared := 0
		for shared < len(prev) && shared < len(entry) && prev[shared] == entry[shared] {
			shared++
		}
		encoded = append(encoded, string(rune(shared+prefixOffset))+entry[shared:])
	}
	return encoded
}

func TestExtractPool_FromDocument(t *testing.T) {
	document := `<html><script>
const cpool = [
'all',
'!com/example/App.main',
];
f(0,0,100)
</script></html>`

	pool, err := ExtractPool(document)

	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "all", pool[0])
	assert.Equal(t, "acom/example/App.main", pool[1])
}

func TestExtractPool_MissingMarkers(t *testing.T) {
	_, err := ExtractPool("<html>no pool here</html>")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFormatError, apperrors.GetErrorCode(err))
}

func TestExtractPool_EmptyRegion(t *testing.T) {
	_, err := ExtractPool("const cpool = [\n];")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFormatError, apperrors.GetErrorCode(err))
}

func TestExtractPool_SkipsNonLiteralLines(t *testing.T) {
	document := `const cpool = [
'first',
// a stray comment line
'!second',
];`

	pool, err := ExtractPool(document)

	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "fsecond", pool[1])
}

func TestExtractPool_DegenerateLiteralLines(t *testing.T) {
	// A bare quote-comma or lone quote line still occupies a pool slot;
	// it must decode to an empty entry, not panic or shift later indices.
	document := `const cpool = [
'all',
',
'
'!x',
];`

	pool, err := ExtractPool(document)

	require.NoError(t, err)
	require.Len(t, pool, 4)
	assert.Equal(t, "all", pool[0])
	assert.Equal(t, "", pool[1])
	assert.Equal(t, "", pool[2])
	// Prefix length 1 over the empty predecessor clamps to 0.
	assert.Equal(t, "x", pool[3])
}

func TestPool_Lookup(t *testing.T) {
	pool := Pool{"foo", "bar"}

	name, ok := pool.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "bar", name)

	_, ok = pool.Lookup(2)
	assert.False(t, ok)

	_, ok = pool.Lookup(-1)
	assert.False(t, ok)
}
