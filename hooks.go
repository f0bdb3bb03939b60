package tracecache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache and page cache call them on hot paths.
type Hooks interface {
	// A page lookup was served without fetching.
	// local reports whether the hit came from the in-process front.
	PageHit(url string, local bool)

	// A page lookup fell through to the upstream fetch.
	PageMiss(url string)

	// The upstream fetch failed; the error also propagates to the caller.
	FetchError(url string, err error)

	// A typed getter could not decode the stored bytes.
	DecodeError(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) PageHit(string, bool)      {}
func (NopHooks) PageMiss(string)           {}
func (NopHooks) FetchError(string, error)  {}
func (NopHooks) DecodeError(string, error) {}
