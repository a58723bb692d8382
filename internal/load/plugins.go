package load

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/vk/loom/internal/module"
)

var scriptExts = map[string]struct{}{
	"js": {}, "jsx": {}, "ts": {}, "tsx": {}, "mjs": {}, "cjs": {},
}

// refusedStyleExts are preprocessor extensions the style loader rejects
// outright: no preprocessor runs in this chain, and silently bundling the
// raw source would produce broken output.
var refusedStyleExts = map[string]struct{}{
	"sass": {}, "scss": {}, "stylus": {}, "less": {},
}

var assetMimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"woff": "font/woff",
	"json": "application/json",
}

// ScriptPlugin loads JavaScript/TypeScript sources.
type ScriptPlugin struct{}

func (p *ScriptPlugin) Name() string { return "script" }

func (p *ScriptPlugin) Load(_ context.Context, path string) (*Content, error) {
	if _, ok := scriptExts[extName(path)]; !ok {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, ExtName: extName(path), Kind: ErrNotFound}
	}
	return &Content{Kind: module.KindScript, Data: string(data)}, nil
}

// StylePlugin loads stylesheets. Preprocessor extensions are refused with an
// unsupported-extension error rather than passed down the chain, where the
// asset loader would silently wrap them.
type StylePlugin struct{}

func (p *StylePlugin) Name() string { return "style" }

func (p *StylePlugin) Load(_ context.Context, path string) (*Content, error) {
	ext := extName(path)
	if _, refused := refusedStyleExts[ext]; refused {
		return nil, &Error{Path: path, ExtName: ext, Kind: ErrUnsupportedExtName}
	}
	if ext != "css" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, ExtName: ext, Kind: ErrNotFound}
	}
	return &Content{Kind: module.KindStyle, Data: string(data)}, nil
}

// AssetPlugin is the terminal plugin: any remaining existing file becomes a
// generated script module exporting the asset as a base64 data URL.
type AssetPlugin struct{}

func (p *AssetPlugin) Name() string { return "asset" }

func (p *AssetPlugin) Load(_ context.Context, path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	mime, ok := assetMimeTypes[extName(path)]
	if !ok {
		mime = "application/octet-stream"
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	wrapper := fmt.Sprintf("module.exports = %q;", fmt.Sprintf("data:%s;base64,%s", mime, encoded))
	return &Content{Kind: module.KindAsset, Data: wrapper}, nil
}
