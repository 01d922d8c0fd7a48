// Package transforms ships the built-in motion strategies for cardwall.
// Every strategy honors the same contract: it only touches the elements the
// controller marked animatable, every tween it adds ends at the element's
// exact final slot with neutral rotation and scale, and it never signals
// completion — the controller owns that.
package transforms
