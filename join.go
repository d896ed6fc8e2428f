package tprint

import "strings"

// JoinList joins items into prose with an Oxford comma, for example
// "red, green, and blue". joiner is usually "and" or "or".
func JoinList(items []string, joiner string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + joiner + " " + items[1]
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		if i == len(items)-1 {
			b.WriteString(joiner)
			b.WriteByte(' ')
		}
		b.WriteString(item)
	}
	return b.String()
}
