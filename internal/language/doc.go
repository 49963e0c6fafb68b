// Package language holds the fixed set of supported translation targets.
//
// Each target carries its display name, the natural-language instruction
// given to the local generation model, the code understood by the remote
// translation API, and its script class. User input is parsed as a BCP 47
// tag so "ZH", "zh-Hans", and "fr-FR" resolve to their base targets, while
// anything outside the table is a configuration error.
package language
