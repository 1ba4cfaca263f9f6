// Package avatar models the image-picker boundary of the survey form. A
// Picker hands control to an external facility and later yields an opaque
// Reference, or nil when the user cancels. Launcher keeps at most one request
// in flight and delivers the outcome to a completion handler.
package avatar
