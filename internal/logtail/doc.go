// Package logtail reads the tail of tally's log file for the notices overlay.
//
// Read keeps a ring buffer of maxLines entries so memory stays bounded no
// matter how large the log grows. Lines come back oldest first. A missing log
// file is not an error.
//
// Classify maps a line to a Level from the markers the app logger writes
// ("warning:", "debug:"), which the UI uses to pick a style.
package logtail
