package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"subtrans/internal/services"
)

// Script describes how a target language is written, which decides the
// cleanup rules applied to backend output.
type Script int

const (
	ScriptAlphabetic Script = iota
	ScriptIdeographic
)

func (s Script) String() string {
	if s == ScriptIdeographic {
		return "ideographic"
	}
	return "alphabetic"
}

// Target describes one supported translation target.
type Target struct {
	Code        string // ISO 639-1
	Name        string // Human-readable name used in prompts
	RemoteCode  string // Code understood by the remote translation API
	Script      Script
	instruction string // fmt template, %s receives the source language name
}

// Instruction renders the model instruction for text written in source.
func (t Target) Instruction(source string) string {
	return fmt.Sprintf(t.instruction, SourceName(source))
}

var targets = []Target{
	{"en", "English", "en", ScriptAlphabetic,
		"Translate the following %s text to English. Provide ONLY the translated text."},
	{"fr", "French", "fr", ScriptAlphabetic,
		"Translate the following %s text to French. Provide ONLY the translated text."},
	{"de", "German", "de", ScriptAlphabetic,
		"Translate the following %s text to German. Provide ONLY the translated text."},
	{"it", "Italian", "it", ScriptAlphabetic,
		"Translate the following %s text to Italian. Provide ONLY the translated text."},
	{"ru", "Russian", "ru", ScriptAlphabetic,
		"Translate the following %s text to Russian. Provide ONLY the translated text."},
	{"zh", "Simplified Chinese", "zh-CN", ScriptIdeographic,
		"Translate the following %s text to Simplified Chinese characters. Provide ONLY the translated text, using Hanzi characters. " +
			"Do not include Pinyin, do not include phonetic guides, do not include extra comments, do not include explanations. " +
			"Include just the translated Hanzi characters."},
}

var byCode map[string]*Target

func init() {
	byCode = make(map[string]*Target, len(targets))
	for i := range targets {
		byCode[targets[i].Code] = &targets[i]
	}
}

// Canonical parses a BCP 47 style code ("ZH", "fr-FR", "zh-Hans") and returns
// its base ISO 639-1 code. Traditional Chinese script tags are not folded into
// zh because the zh target produces Simplified characters.
func Canonical(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	if base.String() == "zh" {
		if script, sconf := tag.Script(); sconf >= language.High && script.String() == "Hant" {
			return "", false
		}
	}
	return base.String(), true
}

// Lookup returns the target for a code, accepting any form Canonical accepts.
func Lookup(code string) (Target, bool) {
	canonical, ok := Canonical(code)
	if !ok {
		return Target{}, false
	}
	t, ok := byCode[canonical]
	if !ok {
		return Target{}, false
	}
	return *t, true
}

// Resolve is Lookup with a configuration error for unsupported codes.
func Resolve(code string) (Target, error) {
	t, ok := Lookup(code)
	if !ok {
		return Target{}, services.Wrap(services.ErrConfiguration, "language", "resolve",
			fmt.Sprintf("unsupported language code %q (supported: %s)", strings.TrimSpace(code), strings.Join(Codes(), ", ")), nil)
	}
	return t, nil
}

// Supported returns every target in table order.
func Supported() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// Codes returns the supported target codes in table order.
func Codes() []string {
	codes := make([]string, 0, len(targets))
	for _, t := range targets {
		codes = append(codes, t.Code)
	}
	return codes
}

// UsesIdeographicCleanup reports whether backend output for code gets the
// ideographic cleanup stage.
func UsesIdeographicCleanup(code string) bool {
	t, ok := Lookup(code)
	return ok && t.Script == ScriptIdeographic
}

// SourceName returns the English name for a source language code. Source
// languages are not restricted to the target table.
func SourceName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "source"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// NormalizeList deduplicates a list of codes into canonical form. Unsupported
// entries are returned separately so callers can reject them up front.
func NormalizeList(codes []string) ([]string, []string) {
	if len(codes) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(codes))
	var invalid []string
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		t, ok := Lookup(code)
		if !ok {
			invalid = append(invalid, strings.TrimSpace(code))
			continue
		}
		if _, dup := seen[t.Code]; dup {
			continue
		}
		seen[t.Code] = struct{}{}
		normalized = append(normalized, t.Code)
	}
	return normalized, invalid
}
