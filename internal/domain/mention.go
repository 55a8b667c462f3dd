package domain

import (
	"fmt"
	"html"
)

// Mention builds the HTML anchor Telegram renders as a tappable link to the
// user. The trailing space lets callers prepend it straight to a sentence.
// Сообщение с упоминанием обязано уходить с HTML-разметкой.
func Mention(userID int64, name string) string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a> `, userID, html.EscapeString(name))
}
