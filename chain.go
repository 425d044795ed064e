package forwardauth

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// MiddlewareName identifies this layer inside a Chain.
const MiddlewareName = "forward-auth"

// StageCookieParsing is the anchor Attach inserts after. The layer must
// run once request cookies are parsed and before any auth enforcement.
const StageCookieParsing = "cookie-parsing"

type chainEntry struct {
	name string
	mw   router.MiddlewareFunc
}

// Chain is an ordered, named middleware pipeline. Hosts register their
// stages under stable names so layers like this one can be spliced in
// by position without reaching into router internals.
type Chain struct {
	entries []chainEntry
}

func NewChain() *Chain {
	return &Chain{}
}

// Use appends a named middleware to the end of the chain.
func (c *Chain) Use(name string, mw router.MiddlewareFunc) *Chain {
	c.entries = append(c.entries, chainEntry{name: name, mw: mw})
	return c
}

// InsertAfter splices a middleware directly after the named anchor.
func (c *Chain) InsertAfter(anchor, name string, mw router.MiddlewareFunc) error {
	idx := c.indexOf(anchor)
	if idx < 0 {
		return errors.New("middleware anchor not registered", errors.CategoryValidation).
			WithMetadata(map[string]any{"anchor": anchor, "middleware": name})
	}

	entry := chainEntry{name: name, mw: mw}
	c.entries = append(c.entries, chainEntry{})
	copy(c.entries[idx+2:], c.entries[idx+1:])
	c.entries[idx+1] = entry

	return nil
}

// Names returns the registered middleware names in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Then composes the chain around a terminal handler, outermost first.
func (c *Chain) Then(h router.HandlerFunc) router.HandlerFunc {
	for i := len(c.entries) - 1; i >= 0; i-- {
		h = c.entries[i].mw(h)
	}
	return h
}

func (c *Chain) indexOf(name string) int {
	for i, e := range c.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// Attach registers the forward-auth middleware immediately after the
// host's cookie-parsing stage. Ordering is a correctness requirement:
// the layer needs parsed cookies and must run before auth enforcement.
func Attach(chain *Chain, f *ForwardAuth) error {
	return chain.InsertAfter(StageCookieParsing, MiddlewareName, f.Middleware())
}
