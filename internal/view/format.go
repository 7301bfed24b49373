package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.SimplifiedChinese)

// formatCount renders n with thousands separators, e.g. 13753 -> "13,753".
func formatCount(n int64, suffix string) string {
	return printer.Sprintf("%d", n) + suffix
}
