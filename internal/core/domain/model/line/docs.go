// Package line holds production order lines and their per-size breakdown.
//
// A line walks the stage machine planning -> cutting -> services -> sewing ->
// finishing -> produced through Advance, which enforces the quantity guards.
// Reaching produced also sets the line state to produced.
package line
