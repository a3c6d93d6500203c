// Package anomaly models quality and process problems reported against a production
// order or one of its lines. An unresolved blocking anomaly keeps its targets in the
// issue state; resolving it is a flag flip, anomalies are never removed by that flow.
package anomaly
