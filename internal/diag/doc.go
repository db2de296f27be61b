// Package diag defines diagnostics produced while converting example files:
// severities, stable codes, and the Bag accumulator shared by one pass.
package diag
