// Package sketchkit implements a parametric 2D sketch engine paired with
// a content-addressed operation log, for a CAD-style modeler: a
// Git-like DAG of immutable operations whose commit ids derive from
// content, parent and position, and an intersection-kernel-driven
// scheduler that splits a sketch's lines, circles and arcs at their
// mutual intersections.
//
// See internal/oplog for the commit log, internal/project for replay,
// internal/sketch and internal/split for the geometry engine.
package sketchkit
