// Package extract pulls generated code out of model responses.
package extract

import (
	"regexp"
	"strings"
)

var anyFence = regexp.MustCompile("(?s)```[^\\n`]*\\n(.*?)```")

func fenceFor(lang string) *regexp.Regexp {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return anyFence
	}
	// the info string may carry attributes after the language tag.
	return regexp.MustCompile("(?s)```(?i:" + regexp.QuoteMeta(lang) + ")(?:[ \\t][^\\n]*)?\\r?\\n(.*?)```")
}

// Code returns the trimmed content of the first fenced block tagged with
// lang, or the trimmed raw text when there is none. An empty lang matches
// blocks with any tag or none.
func Code(raw, lang string) string {
	match := fenceFor(lang).FindStringSubmatch(raw)
	if match == nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(match[1])
}
