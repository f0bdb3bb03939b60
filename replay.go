package tracecache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	st "github.com/unkn0wn-root/tracecache/store"
)

// Replay renders a transcript of an instrumented operation's recorded
// history: a header with the call count, then one line per recorded call in
// call order. Read-only; nothing in the store is mutated.
//
//	Cache.Store was called 2 times:
//	Cache.Store(*("a")) -> 6f4b...
//	Cache.Store(*("b")) -> 02c1...
//
// The inputs and outputs lists are paired by index up to the shorter length;
// a call whose output append was interrupted simply has no line.
func Replay(ctx context.Context, s st.Store, name string) (string, error) {
	var count int64
	if raw, ok, err := s.Get(ctx, name); err != nil {
		return "", err
	} else if ok {
		// an unparsable counter reads as 0, same as absent
		if n, perr := strconv.ParseInt(string(raw), 10, 64); perr == nil {
			count = n
		}
	}

	inputs, err := s.LRange(ctx, name+inputsSuffix, 0, -1)
	if err != nil {
		return "", err
	}
	outputs, err := s.LRange(ctx, name+outputsSuffix, 0, -1)
	if err != nil {
		return "", err
	}

	n := len(inputs)
	if len(outputs) < n {
		n = len(outputs)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s was called %d times:\n", name, count)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s(*%s) -> %s\n", name, inputs[i], outputs[i])
	}
	return b.String(), nil
}
