// Package kernel provides the shared domain primitives of the production system.
//
// The package includes:
//   - UUID: a value object for entity identifiers
//   - ServiceStage: the manufacturing step a line is undergoing
//     (planning, cutting, services, sewing, finishing, produced)
//   - ProductionState: the lifecycle status of an order or line
//     (draft, planned, in_production, issue, produced, invoiced, shipped)
//
// Both enums are closed: values are parsed once at the boundary and invalid values
// cannot be constructed downstream through the exported parsers.
package kernel
