package tprint

import "bytes"

const (
	frontMatterDelim         = "---"
	maxFrontMatterProbeBytes = 64 * 1024
)

// SplitFrontMatter separates a leading YAML front matter block from markup.
// The block must open with a "---" line, continue with a key: value line and
// close with another "---" line within the first 64 KiB. When no block is
// found, ok is false and body is src.
func SplitFrontMatter(src []byte) (meta, body []byte, ok bool) {
	openLine, openNext := nextLine(src, 0)
	if !bytes.Equal(bytes.TrimSpace(trimBOM(openLine)), []byte(frontMatterDelim)) {
		return nil, src, false
	}
	secondLine, _ := nextLine(src, openNext)
	if !frontMatterMetadataLikely(secondLine) {
		return nil, src, false
	}
	metaEnd, bodyStart, found := findClosingFrontMatterDelimiter(src, openNext)
	if !found || metaEnd > maxFrontMatterProbeBytes {
		return nil, src, false
	}
	return src[openNext:metaEnd], src[bodyStart:], true
}

func nextLine(src []byte, start int) ([]byte, int) {
	if start >= len(src) {
		return nil, len(src)
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src)
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	return bytes.HasPrefix(trimmed, []byte("{")) || bytes.Contains(trimmed, []byte(":"))
}

// findClosingFrontMatterDelimiter returns where the metadata ends and where
// the body starts.
func findClosingFrontMatterDelimiter(src []byte, start int) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next := nextLine(src, idx)
		if bytes.Equal(bytes.TrimSpace(line), []byte(frontMatterDelim)) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
