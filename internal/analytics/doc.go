// Package analytics folds flat school records into report summaries.
//
// Everything here is pure: callers fetch records, resolve a Scope, and hand both to the aggregators.
// Missing optional fields never fail a calculation; they land in an "Unknown" bucket or simply do not
// contribute to the metric that needed them.
package analytics
