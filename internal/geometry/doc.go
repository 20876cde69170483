// Package geometry turns requested overlay sizes into pixel dimensions
// relative to the active output.
package geometry
