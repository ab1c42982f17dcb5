// Package geo provides the small amount of spherical geometry the pipeline
// needs: centroids of exit clusters and great-circle distances between them.
package geo
