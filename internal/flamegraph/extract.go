package flamegraph

import (
	"regexp"
	"strconv"
	"strings"
)

// FrameRef is one rendering-call reference to a pool entry: the pool key it
// draws and the sample weight it carries. Weight defaults to 1 when the call
// omits the weight argument.
type FrameRef struct {
	Key    int
	Weight int64
}

// callPattern describes one rendering-call shape. All shapes reduce to the
// same (key, weight) pair; they differ only in how many fixed positional
// arguments sit between the key and the optional weight.
type callPattern struct {
	fn        string
	fixedArgs int
	re        *regexp.Regexp
}

func newCallPattern(fn string, fixedArgs int) callPattern {
	skip := strings.Repeat(`,\d+`, fixedArgs)
	return callPattern{
		fn:        fn,
		fixedArgs: fixedArgs,
		re:        regexp.MustCompile(`\b` + fn + `\((\d+)` + skip + `(?:,(\d+))?`),
	}
}

// The three call shapes used by the rendering script at different tree
// depths: f(key,level,left[,width,...]), n(key[,width,...]), u(key[,width,...]).
var callPatterns = []callPattern{
	newCallPattern("f", 2),
	newCallPattern("n", 0),
	newCallPattern("u", 0),
}

// ExtractRefs scans the report document for rendering calls and returns
// every reference found, duplicates retained: each occurrence is a distinct
// sample-bearing node of the stack tree. Trailing arguments beyond the
// weight position are ignored. A document with no matches yields an empty
// slice, not an error.
func ExtractRefs(document string) []FrameRef {
	var refs []FrameRef
	for _, p := range callPatterns {
		for _, m := range p.re.FindAllStringSubmatch(document, -1) {
			key, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			weight := int64(1)
			if m[2] != "" {
				if w, err := strconv.ParseInt(m[2], 10, 64); err == nil {
					weight = w
				}
			}
			refs = append(refs, FrameRef{Key: key, Weight: weight})
		}
	}
	return refs
}
