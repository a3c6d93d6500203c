// Package order holds the ProductionOrder aggregate: the header of a garment
// manufacturing order, its current service stage and its production state.
//
// The state of an order is normally derived from its lines. Two paths may change it
// outside derivation:
//   - anomaly propagation forces it into issue and lifts it out again (ForceIssue,
//     RestoreFromIssue);
//   - an administrative override (OverrideState), which may neither enter nor leave issue.
package order
