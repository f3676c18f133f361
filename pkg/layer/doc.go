// Package layer models imported chart artwork as an explicit layer tree.
//
// # Overview
//
// The render service returns SVG markup. [ImportSVG] turns it into a tree of
// [Node] values, each either a group ([KindGroup]) or a leaf ([KindLeaf]).
// Importing SVG typically produces deeply nested wrapper groups that are
// awkward to edit in a design tool, so [Flatten] collapses them:
//
//   - An empty group is removed.
//   - A group whose sole child is a group collapses into one group, except
//     that a transformed group directly below <svg> stays separate.
//   - Other groups keep their children, each flattened in turn.
//   - Leaves are never modified.
//
// Flatten works bottom-up and never mutates its input, so
// Flatten(Flatten(t)) equals Flatten(t).
//
// # Placement
//
// [Place] computes where the artwork goes: the origin is copied from the
// placeholder frame while the size comes from the artwork itself. The render
// service is expected to have produced artwork of the requested size already.
//
// # Debugging
//
// [ToDOT] exports a tree as Graphviz DOT and [RenderSVG] renders that DOT
// with go-graphviz, which is handy to inspect what a chart imported as.
package layer
