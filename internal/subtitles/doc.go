// Package subtitles reads and writes timestamped subtitle documents.
//
// Parse splits SRT or WebVTT text into ordered segments (index, timing, text
// lines) and Serialize writes them back with exactly one blank line between
// blocks, so a normalized document round-trips byte for byte. Index and
// timing lines are opaque: they are carried through verbatim and only parsed
// by Inspect, which reports cue counts, time bounds, and malformed timings.
//
// A leading WEBVTT block is kept as the document header and never translated.
// Blocks with fewer than two lines produce a FormatError, which matches
// services.ErrFormat.
package subtitles
