// Package aggregate reshapes flattened conformance rows into the two
// documentation tables: the general implementation table and the per-feature
// support matrix of one category.
//
// Both builders are pure functions of their input rows: row order does not
// change the output, and every organization appears at most once.
//
// The matrix rows come from a FeatureList, a hand-maintained policy artifact
// embedded from features/<category>.yaml. See features/http.yaml for the update
// procedure.
package aggregate
