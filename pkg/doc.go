// Package pkg provides the core libraries for tidytree layout and rendering.
//
// # Overview
//
// Tidytree draws compact, non-overlapping diagrams of trees whose nodes have
// arbitrary rectangular sizes, in time linear in the number of nodes. The
// pkg directory is organized into five main areas:
//
//  1. [tree] - Input model (nodes, validation, JSON interchange)
//  2. [layout] - The layout engine (placement, contours, walks)
//  3. [export] - Serialization of computed layouts
//  4. [render] - Artifact generation (DOT, SVG, PNG)
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	tree.json
//	     ↓
//	[tree] package (parse + validate)
//	     ↓
//	[layout] package (compute positions)
//	     ↓
//	[export] package (serialize placements)
//	     ↓
//	[render] package (DOT / SVG / PNG output)
//
// # Quick Start
//
// Compute a layout and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tidytree/pkg/export"
//	    "github.com/matzehuels/tidytree/pkg/layout"
//	    "github.com/matzehuels/tidytree/pkg/render"
//	    "github.com/matzehuels/tidytree/pkg/tree"
//	)
//
//	// 1. Load the input tree
//	root, _ := tree.ReadTreeFile("tree.json")
//
//	// 2. Compute the layout
//	opts := layout.Options{PeerMargin: 20, ParentChildMargin: 40}
//	res, _ := layout.Compute(root, opts)
//
//	// 3. Serialize and render
//	l := export.FromResult(res, opts)
//	svg, _ := render.RenderSVG(context.Background(), render.ToDOT(l, render.Options{}))
//
// # Main Packages
//
// [tree] - The input model. Trees are plain Node structs with per-node
// width, height, and free-form metadata, read and written as JSON.
//
// [layout] - The layout engine. A post-order walk places each subtree
// relative to its parent by walking the contours of already-placed
// siblings; a pre-order walk resolves absolute coordinates. Supports
// cumulative and layered vertical placement.
//
// [export] - Flat, index-linked wire form of a computed layout, used for
// files, caching, and renderer input.
//
// [render] - Translates layouts into Graphviz DOT with pinned positions
// and rasterizes them to SVG or PNG through the embedded Graphviz engine.
//
// [pipeline] - The load → layout → render pipeline shared by the CLI and
// embedders, with content-addressed caching of layouts and artifacts.
//
// ## Supporting Packages
//
// [cache] - Byte-oriented cache with file-backed and no-op implementations,
// plus key derivation for layouts and artifacts.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook registry for instrumenting pipeline and cache
// events without binding to a metrics backend.
//
// [buildinfo] - Version metadata injected at build time.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/layout
// [export]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/export
// [render]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tidytree/pkg/buildinfo
package pkg
