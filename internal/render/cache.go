package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// poolKey identifies renderers that produce identical output. Style aliases
// are resolved first, so "catppuccin" and "dark" share renderers.
type poolKey struct {
	style            string
	width            int
	emoji            bool
	preserveNewLines bool
	tableWrap        bool
	inlineTableLinks bool
}

func keyFor(opts Options) poolKey {
	return poolKey{
		style:            ResolveStyle(opts.Style),
		width:            opts.Width,
		emoji:            opts.EnableEmoji,
		preserveNewLines: opts.PreserveNewLines,
		tableWrap:        opts.TableWrap,
		inlineTableLinks: opts.InlineTableLinks,
	}
}

// A glamour.TermRenderer is not safe for concurrent Render calls, so every
// reply borrows one from the pool for its key and returns it afterwards.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[poolKey]*sync.Pool
}

var globalPool = newRendererPool()

func newRendererPool() *rendererPool {
	return &rendererPool{pools: make(map[poolKey]*sync.Pool)}
}

func (p *rendererPool) poolFor(key poolKey) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok := p.pools[key]; ok {
		return pool
	}
	pool = &sync.Pool{
		New: func() any {
			r, err := newRenderer(key)
			if err != nil {
				return nil
			}
			return r
		},
	}
	p.pools[key] = pool
	return pool
}

func (p *rendererPool) get(key poolKey) (*glamour.TermRenderer, error) {
	if r, ok := p.poolFor(key).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	// the pool could not build one; build again to report why
	return newRenderer(key)
}

func (p *rendererPool) put(key poolKey, r *glamour.TermRenderer) {
	if r != nil {
		p.poolFor(key).Put(r)
	}
}

func (p *rendererPool) reset() {
	p.mu.Lock()
	p.pools = make(map[poolKey]*sync.Pool)
	p.mu.Unlock()
}

func (p *rendererPool) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pools)
}

func newRenderer(key poolKey) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStylePath(key.style),
		glamour.WithWordWrap(key.width),
		glamour.WithTableWrap(key.tableWrap),
		glamour.WithInlineTableLinks(key.inlineTableLinks),
	}
	if key.emoji {
		opts = append(opts, glamour.WithEmoji())
	}
	if key.preserveNewLines {
		opts = append(opts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(opts...)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	globalPool.reset()
}

// CacheSize returns the number of distinct renderer configurations seen.
func CacheSize() int {
	return globalPool.size()
}
