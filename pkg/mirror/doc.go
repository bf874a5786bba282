// Package mirror walks a source tree and materializes its video files
// under a destination tree via an external transform, one file at a time.
//
// The walk is depth-first and incremental: destination files that already
// exist are never reprocessed, so re-running after an interruption picks
// up where the previous run left off. Each produced file appears at its
// final name atomically; an observer of the destination tree never sees a
// partially written video.
package mirror
