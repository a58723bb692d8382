package load

import (
	"context"
	"strings"

	"github.com/vk/loom/internal/module"
)

// HelperPathPrefix namespaces virtual runtime-helper module paths. Helper
// modules have no file on disk; their source is embedded in the binary.
const HelperPathPrefix = "loom:helper/"

// helperSources holds the runtime helpers the transform stage may inject.
// They are plain CommonJS on purpose so that building a helper never injects
// further helpers.
var helperSources = map[string]string{
	"loom:helper/interop.js": "module.exports = function _interop(m) { return m && m.__esModule ? m : { default: m }; };",
	"loom:helper/esm.js":     "module.exports = function _esm(exports) { exports.__esModule = true; return exports; };",
}

// HelperPlugin serves virtual runtime-helper modules from the embedded
// source table.
type HelperPlugin struct{}

func (p *HelperPlugin) Name() string { return "helper" }

func (p *HelperPlugin) Load(_ context.Context, path string) (*Content, error) {
	if !strings.HasPrefix(path, HelperPathPrefix) {
		return nil, nil
	}
	src, ok := helperSources[path]
	if !ok {
		return nil, &Error{Path: path, ExtName: extName(path), Kind: ErrNotFound}
	}
	return &Content{Kind: module.KindScript, Data: src}, nil
}

// IsHelperPath reports whether the path names a virtual helper module.
func IsHelperPath(path string) bool {
	return strings.HasPrefix(path, HelperPathPrefix)
}
