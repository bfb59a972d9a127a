// Package driver ties the pipeline together at the file level: read a
// grammar.json, derive its types, render the block, and optionally
// consult the disk cache.
package driver

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"astgen/internal/asttype"
	"astgen/internal/grammar"
	"astgen/internal/typegen"
)

// Result is the outcome of generating one grammar file.
type Result struct {
	Path        string
	GrammarName string
	Types       []asttype.Type // nil when served from cache
	TypeNames   []string       // emission order, always populated
	Block       string
	Cached      bool
}

// Generate runs the full pipeline for one grammar file. cache may be
// nil to disable caching. Cache writes are best-effort: a failed Put
// does not fail the run.
func Generate(path string, cache *DiskCache) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := Digest(sha256.Sum256(data))

	if payload, ok, err := cache.Get(key); err == nil && ok {
		return &Result{
			Path:        path,
			GrammarName: payload.GrammarName,
			TypeNames:   payload.TypeNames,
			Block:       payload.Block,
			Cached:      true,
		}, nil
	}

	g, err := grammar.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	types, err := typegen.Run(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &Result{
		Path:        path,
		GrammarName: g.Name,
		Types:       types,
		TypeNames:   make([]string, len(types)),
		Block:       asttype.RenderBlock(types),
	}
	for i, t := range types {
		res.TypeNames[i] = t.Name
	}

	_ = cache.Put(key, &Payload{
		Schema:      diskCacheSchemaVersion,
		GrammarName: res.GrammarName,
		TypeNames:   res.TypeNames,
		Block:       res.Block,
	})
	return res, nil
}
