// Package annotate holds the authoritative annotation state for a cryptic
// crossword clue: an ordered set of non-overlapping tagged spans over the
// clue text, the mode descriptors that govern their behavior, and the
// reconciler that turns raw user selections into segment changes.
//
// The package is pure state and transforms. It never touches the terminal,
// the file system, or the network, and all of its operations are synchronous
// over in-memory values. Rendering, persistence, and input handling live in
// their own packages and consume this one.
package annotate
