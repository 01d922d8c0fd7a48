// Package choreo orchestrates animated card reordering: it computes grid
// layouts, captures pre-mutation geometry (FLIP), selects a motion strategy
// from a registry and drives a timeline until every element settles at its
// exact final position, firing a single completion signal per request.
//
// The package has no rendering dependencies. Callers supply a Stage whose
// Elements expose and accept visual geometry; the host event loop feeds
// Controller.Tick from whatever frame scheduler it uses.
package choreo
