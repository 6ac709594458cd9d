// Package format renders user-supplied values safely into Telegram
// Markdown messages.
package format

import "strings"

// Code wraps a value in inline code markup. Backticks inside the value
// would terminate the span early, so they are stripped; everything else
// is literal inside a code span.
func Code(text string) string {
	return "`" + strings.ReplaceAll(text, "`", "'") + "`"
}
