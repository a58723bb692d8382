package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/loom/internal/ctxlog"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "entry"},
		{Type: "resolve"},
		{Type: "externals"},
	},
}

var resolveSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "alias"},
	},
}

// Load reads the project configuration from <root>/loom.hcl. A missing file
// is not an error; the defaults apply.
func Load(ctx context.Context, root string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No project config file found, using defaults.", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode config file %s: %w", path, diags)
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "entry":
			m, err := decodeStringMapBody(block.Body)
			if err != nil {
				return nil, fmt.Errorf("decode entry block: %w", err)
			}
			cfg.Entry = m
		case "externals":
			m, err := decodeStringMapBody(block.Body)
			if err != nil {
				return nil, fmt.Errorf("decode externals block: %w", err)
			}
			cfg.Externals = m
		case "resolve":
			resolveContent, diags := block.Body.Content(resolveSchema)
			if diags.HasErrors() {
				return nil, fmt.Errorf("decode resolve block: %w", diags)
			}
			if attr, ok := resolveContent.Attributes["alias"]; ok {
				m, err := decodeStringMapAttr(attr)
				if err != nil {
					return nil, fmt.Errorf("decode resolve alias: %w", err)
				}
				cfg.Resolve.Alias = m
			}
		}
	}

	logger.Debug("Project config loaded.",
		"path", path,
		"entries", len(cfg.Entry),
		"aliases", len(cfg.Resolve.Alias),
		"externals", len(cfg.Externals),
	)
	return cfg, nil
}

// decodeStringMapBody evaluates every attribute of a block body as a string,
// e.g. `entry { main = "src/index.ts" }`.
func decodeStringMapBody(body hcl.Body) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	// Evaluate in a stable order so the first error reported is deterministic.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]string, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = str.AsString()
	}
	return out, nil
}

// decodeStringMapAttr evaluates a single attribute holding an object/map of
// strings, e.g. `alias = { "@" = "src" }`.
func decodeStringMapAttr(attr *hcl.Attribute) (map[string]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return map[string]string{}, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("expected a map of strings, got %s", val.Type().FriendlyName())
	}

	out := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k.AsString(), err)
		}
		out[k.AsString()] = str.AsString()
	}
	return out, nil
}
