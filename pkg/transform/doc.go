// Package transform runs external media tools against single files.
//
// Runner executes a command under a hard timeout and kills it on expiry.
// External implements Transform with ffprobe (probe) and mp3val (verify).
// The output parsers are pure functions so they can be tested without the
// binaries installed.
package transform
