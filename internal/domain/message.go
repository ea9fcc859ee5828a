package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the platform limit for a single message, in characters.
const MaxMessageLength = 2000

// SplitMessage splits text into chunks of at most limit characters. A chunk
// ends at the last newline inside the window, else at the last space, else
// exactly at the limit. Whitespace at a split point is dropped.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		window := string(runes[:limit])

		cut := strings.LastIndex(window, "\n")
		if cut <= 0 {
			cut = strings.LastIndex(window, " ")
		}
		if cut <= 0 {
			cut = len(window)
		}

		chunks = append(chunks, strings.TrimRight(text[:cut], " \n\t"))
		text = strings.TrimLeft(text[cut:], " \n\t")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

var tinyText = func() *strings.Replacer {
	from := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-.;")
	to := []rune("ᵃᵇᶜᵈᵉᶠᵍʰᶦʲᵏˡᵐⁿᵒᵖᑫʳˢᵗᵘᵛʷˣʸᶻᴬᴮᶜᴰᴱᶠᴳᴴᴵᴶᴷᴸᴹᴺᴼᴾQᴿˢᵀᵁⱽᵂˣʸᶻ⁰¹²³⁴⁵⁶⁷⁸⁹⁻ˑˡ")
	pairs := make([]string, 0, 2*len(from))
	for i := range from {
		pairs = append(pairs, string(from[i]), string(to[i]))
	}
	return strings.NewReplacer(pairs...)
}()

// TinyText renders text in superscript characters where a superscript form
// exists. Other characters are left unchanged.
func TinyText(text string) string {
	return tinyText.Replace(text)
}
