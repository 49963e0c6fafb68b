// Package pipeline drives one subtitle document through a translation
// backend and writes the translated document.
//
// A run moves LOADED -> TRANSLATING -> WRITTEN. Every segment of the input
// appears in the output in the same order with its index and timing
// untouched; a segment whose translation fails keeps its original text.
// Nothing is written unless the run reaches WRITTEN, and the write itself is
// atomic. RunAll repeats the run for several target languages next to the
// source file.
package pipeline
