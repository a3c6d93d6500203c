// Package services holds the pure domain logic that spans a production order and its
// lines: deriving the order state, propagating anomaly issues and grouping sales order
// lines into production lines. Nothing here touches storage.
package services
