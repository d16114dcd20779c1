// Package kingraph renders the kinematic structure of a scene as a
// node-link diagram.
//
// # Overview
//
// Links become boxes, joints become labelled arrows between the links they
// connect, and nested models become clusters. Node names use the same
// flattened naming as the URDF renderer, so the diagram shows exactly the
// namespace a flattened export would produce.
//
// # Usage
//
// Convert a model to DOT format, then render to SVG:
//
//	dot := kingraph.ToDOT(m, kingraph.Options{})
//	svg, err := kingraph.RenderSVG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package kingraph
