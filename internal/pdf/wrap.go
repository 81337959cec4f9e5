package pdf

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// wrapText splits text into lines of at most width characters. Paragraph
// breaks are kept; words longer than width are cut.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string

	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var cur strings.Builder
		curLen := 0
		flush := func() {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}

		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if curLen > 0 {
					flush()
				}
				head, tail := splitRunes(w, width)
				lines = append(lines, head)
				w = tail
			}

			wl := utf8.RuneCountInString(w)
			switch {
			case curLen == 0:
				cur.WriteString(w)
				curLen = wl
			case curLen+1+wl <= width:
				cur.WriteByte(' ')
				cur.WriteString(w)
				curLen += 1 + wl
			default:
				flush()
				cur.WriteString(w)
				curLen = wl
			}
		}
		if curLen > 0 {
			flush()
		}
	}

	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

// truncateLines keeps at most max lines, marking the cut on the last one.
func truncateLines(lines []string, max int) []string {
	if max < 1 {
		return nil
	}
	if len(lines) <= max {
		return lines
	}

	out := append([]string(nil), lines[:max]...)
	last := strings.TrimRight(out[max-1], " ")
	out[max-1] = last + ellipsis
	return out
}
