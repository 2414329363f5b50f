package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for decode error codes.
// data provides optional metadata to embed in the message (for example,
// "value" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"unsupported_dialect":    "unsupported schema dialect {value}",
		"missing_required_field": "required keyword {expected} is missing",
		"type_mismatch":          "unexpected value {value}, expected {expected}",
		"ambiguous_variant":      "node declares both anyOf and allOf",
		"wrong_variant":          "union is not a {expected}",
		"parse_error":            "schema is not well-formed",
	},
	"ja": {
		"unsupported_dialect":    "サポートされていないスキーマ方言です: {value}",
		"missing_required_field": "必須キーワード {expected} がありません",
		"type_mismatch":          "値 {value} が不正です (期待値: {expected})",
		"ambiguous_variant":      "anyOf と allOf が同時に指定されています",
		"wrong_variant":          "{expected} ではありません",
		"parse_error":            "スキーマの構文が不正です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
