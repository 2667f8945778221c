// Package tts builds Google Translate text-to-speech URLs for quiz
// sentences. Playback happens on the client; the server only computes
// the URLs, so no network access or audio handling lives here.
package tts

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	endpoint = "https://translate.google.com/translate_tts"

	// maxChunkLen is the longest text the endpoint reliably accepts
	// per request.
	maxChunkLen = 200
)

// DefaultLanguage is the speech language when none is given.
const DefaultLanguage = "en"

// URL returns a single playback URL for text. Text longer than the
// per-request limit is truncated; use URLs for long inputs.
func URL(text, lang string) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	text = truncate(text, maxChunkLen)
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", lang)
	q.Set("client", "tw-ob")
	return fmt.Sprintf("%s?%s", endpoint, q.Encode())
}

// truncate cuts text to at most n bytes without splitting a rune.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// URLs splits text on word boundaries into chunks the endpoint accepts
// and returns one URL per chunk, in playback order.
func URLs(text, lang string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxChunkLen {
		return []string{URL(text, lang)}
	}

	var (
		chunks  []string
		current strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > maxChunkLen {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	urls := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		urls = append(urls, URL(chunk, lang))
	}
	return urls
}
