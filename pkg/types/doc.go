// Package types defines the data model shared by the scanner, classifier,
// resolver, executor and report packages, plus the FS abstraction they
// operate on.
package types
