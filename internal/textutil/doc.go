// Package textutil holds the text normalizer applied to backend output and a
// few small string helpers shared by the CLI and pipeline.
//
// CleanTranslation strips the framing that generation models wrap around a
// translation: surrounding quotes for every language, and for ideographic
// targets also parentheticals, "Note:" style commentary, and trailing prose
// after a quoted answer. It is pure and idempotent.
package textutil
