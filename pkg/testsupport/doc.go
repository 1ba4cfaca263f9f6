// Package testsupport holds fixtures shared by package tests: controllers
// over the bundled catalog, submitted snapshots and golden-file helpers.
package testsupport
