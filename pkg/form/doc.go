// Package form holds the survey form's state and the rules around it.
//
// A Controller owns one State: name, age, gender, subscription flag, an
// optional avatar reference and the summary produced by the last successful
// submit. Setters mutate one field at a time and notify subscribers with an
// immutable Snapshot so presentation layers can redraw. The only validation
// rule is a non-blank name; Submit is a no-op while it fails.
package form
