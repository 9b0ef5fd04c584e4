package common

import "strings"

func RemoveSingleQuotesIfAny(str string) string {
	return removeWrappingQuotes(str, '\'')
}

// RemoveDoubleQuotesIfAny sometimes, the model returns the whole answer as "\"Hello\"". Quotes inside the text are
// left alone.
func RemoveDoubleQuotesIfAny(str string) string {
	return removeWrappingQuotes(str, '"')
}

func removeWrappingQuotes(str string, quote byte) string {
	if len(str) > 2 && str[0] == quote && str[len(str)-1] == quote && strings.Count(str, string(quote)) == 2 {
		str = str[1 : len(str)-1]
	}
	return str
}
