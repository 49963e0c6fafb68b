// Package translation defines the Backend capability used by the pipeline and
// its two variants.
//
// PerSegment sends one prompt per subtitle to a text-generation model and
// retries failed calls a fixed number of times with a fixed delay. Batched
// joins several subtitles with a sentinel separator, sends them to a
// translation service in one request, and splits the response back into
// slots, pausing after every batch. Both report a Result per input text, in
// input order; a Result with a non-nil Err is a segment failure the caller
// recovers from by keeping the original text.
package translation
