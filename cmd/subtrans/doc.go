// Package main hosts the subtrans CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the translation backend each language is routed to, and hands the work to
// the pipeline package. Commands only parse flags and render results; the
// translation logic lives in the internal packages.
package main
