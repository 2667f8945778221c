package tts

import (
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestURL_Encodes(t *testing.T) {
	got := URL("Do you like coffee?", "en")

	if !strings.HasPrefix(got, "https://translate.google.com/translate_tts?") {
		t.Fatalf("unexpected endpoint: %q", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("q") != "Do you like coffee?" {
		t.Errorf("q = %q", q.Get("q"))
	}
	if q.Get("tl") != "en" {
		t.Errorf("tl = %q", q.Get("tl"))
	}
	if q.Get("client") != "tw-ob" {
		t.Errorf("client = %q", q.Get("client"))
	}
}

func TestURL_DefaultLanguage(t *testing.T) {
	u, err := url.Parse(URL("hello", ""))
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("tl"); got != DefaultLanguage {
		t.Errorf("tl = %q, want %q", got, DefaultLanguage)
	}
}

func TestURLs_ShortTextSingleChunk(t *testing.T) {
	urls := URLs("Short sentence.", "en")
	if len(urls) != 1 {
		t.Fatalf("expected 1 url, got %d", len(urls))
	}
}

func TestURLs_LongTextChunksOnWordBoundaries(t *testing.T) {
	long := strings.Repeat("seventeen letters ", 30) // ~540 chars
	urls := URLs(long, "en")
	if len(urls) < 3 {
		t.Fatalf("expected multiple chunks, got %d", len(urls))
	}
	for i, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("parse %d: %v", i, err)
		}
		text := u.Query().Get("q")
		if len(text) > 200 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(text))
		}
		if strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ") {
			t.Errorf("chunk %d has ragged edges: %q", i, text)
		}
	}
}

func TestURL_TruncatesOnRuneBoundary(t *testing.T) {
	// 100 Hangul syllables, 3 bytes each: 300 bytes with no spaces, so
	// truncation cannot fall back on a word boundary.
	long := strings.Repeat("가", 100)

	for _, raw := range append(URLs(long, "ko"), URL(long, "ko")) {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		text := u.Query().Get("q")
		if !utf8.ValidString(text) {
			t.Errorf("q holds a split rune: %q", text)
		}
		if len(text) == 0 || len(text) > 200 {
			t.Errorf("q length = %d bytes", len(text))
		}
	}
}

func TestURLs_EmptyText(t *testing.T) {
	if urls := URLs("   ", "en"); urls != nil {
		t.Errorf("expected nil, got %v", urls)
	}
}
