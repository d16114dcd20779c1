// Package sceneio serializes scene trees to and from external formats.
//
// The JSON form is the canonical interchange format: a tree of plain
// documents with string-tagged unions for shapes, materials, and joint
// kinds, designed for round-trip fidelity. The same documents carry bson
// tags so stored scenes share one schema with the wire format.
//
// A small TOML manifest format is also supported for hand-authored simple
// scenes built from single-geometry links.
package sceneio
