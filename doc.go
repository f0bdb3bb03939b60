// Package tracecache implements a typed cache over a shared key-value store
// with composable call instrumentation. Values are stored under fresh random
// keys (UUIDv4) and read back through caller-supplied decoders; the store
// itself only ever holds byte sequences.
//
// Components:
//   - store.Store: the key-value backend (Redis, or in-process for tests).
//   - codec.Codec[V]: (de)serializes V <-> []byte on retrieval.
//   - Middleware: stackable wrappers (CountCalls, CallHistory) around any
//     store-mutating operation; Replay renders the recorded history.
//   - pagecache: URL fetch cache with access counting and per-entry TTL.
//
// Keys:
//
//	<uuid4>        - typed cache entries
//	<op>           - invocation counter for an instrumented operation
//	<op>:inputs    - rendered argument tuples, one per call
//	<op>:outputs   - rendered results, one per successful call
//	cache:<url>    - page content (TTL-bounded)
//	count:<url>    - page access counter (never expires)
//
// Instrumentation pattern:
//
//	op := tracecache.Chain(base,
//	    tracecache.CountCalls(st, "Cache.Store"),
//	    tracecache.CallHistory(st, "Cache.Store"))
//	out, err := op(ctx, "payload")
//	transcript, _ := tracecache.Replay(ctx, st, "Cache.Store")
package tracecache
