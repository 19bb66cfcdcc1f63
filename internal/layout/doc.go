// Package layout turns a sheet stack projection into terminal geometry and
// composites the rendered sheets over the host surface.
package layout
