// Package surveyform hosts a single-screen survey form: a name, an age, a
// gender, a newsletter subscription and an optional avatar, submitted into a
// localized summary line.
//
// The form state lives in pkg/form, display strings in pkg/labels, and the
// terminal front end in pkg/renderers/tui. This package re-exports the common
// entry points:
//
//	summary, err := surveyform.Summarize("en", surveyform.Input{Name: "Anna", Age: surveyform.Age(30)})
package surveyform
