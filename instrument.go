package tracecache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	st "github.com/unkn0wn-root/tracecache/store"
)

// History key suffixes. Counter key is the operation name itself.
const (
	inputsSuffix  = ":inputs"
	outputsSuffix = ":outputs"
)

// Op is an instrumentable operation. Counting and history are orthogonal
// concerns over this call boundary; they compose as Middleware rather than
// being baked into any particular operation.
type Op func(ctx context.Context, args ...any) (any, error)

// Middleware wraps an Op with a cross-cutting concern.
type Middleware func(Op) Op

// Chain applies mw to op so that mw[0] is outermost.
func Chain(op Op, mw ...Middleware) Op {
	for i := len(mw) - 1; i >= 0; i-- {
		op = mw[i](op)
	}
	return op
}

// CountCalls increments the counter stored under name before each
// invocation. The increment is unconditional per call: an op that fails
// afterwards still counts. A failed increment aborts the call, so the
// wrapped op never runs uncounted.
func CountCalls(s st.Store, name string) Middleware {
	return func(next Op) Op {
		return func(ctx context.Context, args ...any) (any, error) {
			if _, err := s.Incr(ctx, name); err != nil {
				return nil, fmt.Errorf("count %s: %w", name, err)
			}
			return next(ctx, args...)
		}
	}
}

// CallHistory appends the rendered argument tuple to <name>:inputs before
// invoking, and the rendered result to <name>:outputs after a successful
// return. On op failure the output append is skipped, so the lists may
// diverge by one entry; Replay truncates to the shorter list.
func CallHistory(s st.Store, name string) Middleware {
	return func(next Op) Op {
		return func(ctx context.Context, args ...any) (any, error) {
			if err := s.RPush(ctx, name+inputsSuffix, []byte(renderArgs(args))); err != nil {
				return nil, fmt.Errorf("history %s: %w", name, err)
			}
			out, err := next(ctx, args...)
			if err != nil {
				return nil, err
			}
			if err := s.RPush(ctx, name+outputsSuffix, []byte(renderValue(out))); err != nil {
				return nil, fmt.Errorf("history %s: %w", name, err)
			}
			return out, nil
		}
	}
}

// renderArgs renders an argument tuple, quoting text-like members so that
// ("a") and (97) stay distinguishable in the recorded history.
func renderArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts[i] = strconv.Quote(v)
		case []byte:
			parts[i] = strconv.Quote(string(v))
		default:
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// renderValue renders an op result as plain text.
func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
