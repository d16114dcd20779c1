// Package scene models a robot/scene description as a tree of owned
// entities (models, links, joints, geometry, materials, sensors, states)
// and renders it deterministically into two textual formats:
//
//   - SDF, the nesting format: first-class nested models with locally
//     scoped names and poses, wrapped in an <sdf version="..."> envelope.
//   - URDF, the flattening format: a single <robot> root with one flat
//     namespace and no native sub-model nesting.
//
// Every entity implements the dual-rendering contract defined by
// [github.com/scenesmith/scenesmith/pkg/render.Entity]. Flattening a nested
// model into URDF scopes names with the context separator and bakes ancestor
// model poses into each descendant element's own pose. Features one format
// cannot express surface as non-fatal diagnostics; only genuinely
// inexpressible constructs (an Include or a World under URDF) abort the
// render with a hard error.
//
// Cross-references between a joint and its parent/child links are plain name
// strings, never object pointers, and are not validated by the renderer;
// callers may run the optional pkg/validate pass before rendering.
//
// Entities are constructed once, builder-style, before any rendering.
// Rendering is read-only on the tree: the same tree may be rendered
// concurrently as long as every call uses its own render context.
package scene
