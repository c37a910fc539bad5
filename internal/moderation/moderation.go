package moderation

import (
	"regexp"
	"strings"
)

// Result — вердикт модерации. Reason заполняется только при отказе и
// показывается пользователю как есть.
type Result struct {
	IsClean bool   `json:"isClean"`
	Reason  string `json:"reason,omitempty"`
}

// Чистая детерминированная проверка без I/O. Применяется до записи к
// заголовку и описанию заявки, сроку и сообщению предложения.
// Сообщения чата по умолчанию не проверяются, см. конфиг
// MODERATE_CHAT_MESSAGES.

var profanity = []string{
	"fuck", "shit", "bitch", "asshole", "bastard", "dick", "cunt",
}

var scamPhrases = []string{
	"buy crypto",
	"free crypto",
	"crypto giveaway",
	"earn money fast",
	"get rich quick",
	"make money fast",
	"guaranteed income",
	"double your money",
	"free money",
	"click here",
	"work from home and earn",
	"investment opportunity",
	"send me your password",
	"wire transfer upfront",
}

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// Check классифицирует свободный текст как чистый либо отклонённый.
func Check(text string) Result {
	lowered := strings.ToLower(text)

	for _, w := range profanity {
		if containsWord(lowered, w) {
			return Result{Reason: "текст содержит нецензурную лексику"}
		}
	}

	for _, phrase := range scamPhrases {
		if strings.Contains(lowered, phrase) {
			return Result{Reason: "текст похож на спам или мошенническое предложение"}
		}
	}

	if len(urlRegex.FindAllString(lowered, -1)) > 2 {
		return Result{Reason: "слишком много ссылок в тексте"}
	}

	return Result{IsClean: true}
}

// containsWord ищет слово по границам, чтобы не задевать подстроки
// внутри обычных слов.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isAlnum(text[start-1])
		afterOK := end == len(text) || !isAlnum(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 'A' && b <= 'Z'
}
