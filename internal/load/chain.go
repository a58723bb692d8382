package load

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/module"
)

// contentCacheSize bounds the per-build content cache. Large projects evict
// cold entries instead of holding every source in memory.
const contentCacheSize = 4096

// Content is the raw loaded form of a module before parsing.
type Content struct {
	// Kind tells the parser how to interpret Data.
	Kind module.AstKind
	// Data is the source text. Binary assets arrive pre-wrapped as a
	// generated script, so Data is always text.
	Data string
}

// Plugin claims and loads content for some subset of paths. Returning
// (nil, nil) declines the path and passes it to the next plugin in the
// chain.
type Plugin interface {
	Name() string
	Load(ctx context.Context, path string) (*Content, error)
}

// Chain is an ordered loader plugin chain with an LRU content cache.
type Chain struct {
	plugins []Plugin
	cache   *lru.Cache[string, *Content]
}

// NewChain builds a chain from the given plugins, in claim order.
func NewChain(plugins ...Plugin) *Chain {
	cache, err := lru.New[string, *Content](contentCacheSize)
	if err != nil {
		// lru.New fails only on a non-positive size.
		panic(err)
	}
	return &Chain{plugins: plugins, cache: cache}
}

// DefaultChain is the standard loader: runtime helpers, scripts, styles,
// then the catch-all asset loader.
func DefaultChain() *Chain {
	return NewChain(
		&HelperPlugin{},
		&ScriptPlugin{},
		&StylePlugin{},
		&AssetPlugin{},
	)
}

// Load obtains content for path. The first plugin to claim the path wins; a
// path no plugin claims fails with ErrNotFound.
func (c *Chain) Load(ctx context.Context, path string) (*Content, error) {
	logger := ctxlog.FromContext(ctx)

	if content, ok := c.cache.Get(path); ok {
		logger.Debug("Content cache hit.", "path", path)
		return content, nil
	}

	for _, p := range c.plugins {
		content, err := p.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		if content == nil {
			continue
		}
		logger.Debug("Content loaded.", "path", path, "plugin", p.Name(), "kind", content.Kind.String())
		c.cache.Add(path, content)
		return content, nil
	}

	return nil, &Error{Path: path, ExtName: extName(path), Kind: ErrNotFound}
}

// extName returns the path's extension without the leading dot.
func extName(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	// Guard against dots in directory names.
	if strings.ContainsAny(path[idx:], "/\\") {
		return ""
	}
	return path[idx+1:]
}
