// Package onemap is a client for the OneMap place directory: free-text
// search, nearest-rail-stop lookup, and the directory/exit scans used to
// backfill stations missing from the exits feed. Requests are rate limited
// client side and retried a bounded number of times; OneMap's stringly
// typed coordinate fields are decoded defensively, with malformed hits
// skipped rather than failing the query.
package onemap
