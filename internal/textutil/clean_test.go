package textutil

import "testing"

func TestCleanTranslation(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang string
		want string
	}{
		{name: "straight quotes", text: `"Bonjour."`, lang: "fr", want: "Bonjour."},
		{name: "curly quotes", text: "“Hallo.”", lang: "de", want: "Hallo."},
		{name: "dialogue with inner quotes", text: `"He said "hi""`, lang: "en", want: `He said "hi"`},
		{name: "curly dialogue with inner quotes", text: "“Dijo “hola””", lang: "fr", want: "Dijo “hola”"},
		{name: "trim only", text: "  Ciao  ", lang: "it", want: "Ciao"},
		{name: "alphabetic keeps parentheticals", text: "Hello (informal)", lang: "en", want: "Hello (informal)"},
		{name: "alphabetic keeps notes", text: "Hello\nNote: informal", lang: "en", want: "Hello\nNote: informal"},
		{name: "quote then note", text: `"Hola" Note: informal`, lang: "zh", want: "Hola"},
		{name: "fullwidth parenthetical", text: "你好（nǐ hǎo）", lang: "zh", want: "你好"},
		{name: "ascii parenthetical", text: "你好 (hello) 世界", lang: "zh", want: "你好 世界"},
		{name: "note line dropped", text: "你好\nNote: this is informal", lang: "zh", want: "你好"},
		{name: "fullwidth colon note", text: "你好\n注意：语气随意", lang: "zh", want: "你好"},
		{name: "embedded marker truncated", text: "你好 请注意这是非正式的", lang: "zh", want: "你好"},
		{name: "quoted answer with prose", text: `"你好" 这是翻译`, lang: "zh", want: "你好"},
		{name: "whitespace collapsed", text: "你好   世界", lang: "zh", want: "你好 世界"},
		{name: "ideographic spaces collapsed", text: "你好\u3000\u3000世界", lang: "zh", want: "你好 世界"},
		{name: "quoted answer with commentary line", text: "\"你好\"\n这是翻译说明", lang: "zh", want: "你好"},
		{name: "prefixed answer dropped", text: "译文：你好", lang: "zh", want: ""},
		{name: "empty", text: "", lang: "zh", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTranslation(tt.text, tt.lang); got != tt.want {
				t.Fatalf("CleanTranslation(%q, %q) = %q, want %q", tt.text, tt.lang, got, tt.want)
			}
		})
	}
}

func TestCleanTranslationIdempotent(t *testing.T) {
	inputs := []string{
		`""Hola""`,
		`"“Hi”"`,
		`"你好" Note: "informal" (casual)`,
		"  (注) 你好  \n\n 译文: 世界 ",
		`"a" "b"`,
		`"He said "hi""`,
		"\"你好\"\n这是翻译说明",
		"“你好”（hello）",
		"Translation: hi\nhello Note: x",
		`"`,
		"“",
	}
	for _, lang := range []string{"en", "zh"} {
		for _, input := range inputs {
			once := CleanTranslation(input, lang)
			twice := CleanTranslation(once, lang)
			if once != twice {
				t.Fatalf("not idempotent for %q (%s): %q then %q", input, lang, once, twice)
			}
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"Movie.es":    "movie_es",
		"  ":          "unknown",
		"--__--":      "unknown",
		"Episode 01!": "episode_01",
		"a  b__c":     "a_b_c",
		"Añejo run":   "a_ejo_run",
	}
	for input, want := range tests {
		if got := SanitizeToken(input); got != want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", input, got, want)
		}
	}
}
