package codeblock

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	titlePattern       = regexp.MustCompile(`\btitle=(?:"([^"]*)"|'([^']*)')`)
	rangePattern       = regexp.MustCompile(`\{([\d,\-\s]+)\}`)
	lineNumbersPattern = regexp.MustCompile(`\bshowLineNumbers\b(?:=(\d+))?`)
	classPattern       = regexp.MustCompile(`\bclassName=(?:"([^"]*)"|'([^']*)')`)
	magicComment       = regexp.MustCompile(`^\s*(?://|#|/\*|<!--|\{/\*)\s*(highlight-next-line|highlight-start|highlight-end)\s*(?:\*/\}|\*/|-->)?\s*$`)
)

// ParseFence builds Metadata from a fence info string and the fence body.
//
// The info string is "lang [title=\"...\"] [{1,3-5}] [showLineNumbers[=N]]".
// A single trailing newline is dropped from the body. When no {ranges} are
// given, highlight-next-line / highlight-start / highlight-end comments are
// removed from the code and mark the lines they refer to.
func ParseFence(info, body string) Metadata {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.TrimSuffix(body, "\n")

	language, meta := splitInfo(info)
	m := Metadata{Language: language, Code: body}

	m.Title = quotedValue(titlePattern, meta)
	m.ClassName = quotedValue(classPattern, meta)

	// Flags and ranges are matched with quoted values removed, so a title like
	// "{config}" is not read as a range.
	unquoted := classPattern.ReplaceAllString(titlePattern.ReplaceAllString(meta, ""), "")

	if match := lineNumbersPattern.FindStringSubmatch(unquoted); match != nil {
		start := 1
		if match[1] != "" {
			if n, err := strconv.Atoi(match[1]); err == nil {
				start = n
			}
		}
		m.LineNumbersStart = StartAt(start)
	}

	if match := rangePattern.FindStringSubmatch(unquoted); match != nil {
		lineCount := strings.Count(body, "\n") + 1
		m.LineClassNames = rangeClasses(match[1], lineCount)
		return m
	}

	m.Code, m.LineClassNames = applyMagicComments(body)
	return m
}

// quotedValue returns the value of a key="..." or key='...' pair.
func quotedValue(pattern *regexp.Regexp, meta string) string {
	match := pattern.FindStringSubmatch(meta)
	if match == nil {
		return ""
	}
	return match[1] + match[2]
}

func splitInfo(info string) (language, meta string) {
	info = strings.TrimSpace(info)
	if info == "" {
		return "", ""
	}
	first, rest, _ := strings.Cut(info, " ")
	if strings.HasPrefix(first, "{") || strings.Contains(first, "=") {
		return "", info
	}
	return first, strings.TrimSpace(rest)
}

func rangeClasses(ranges string, lineCount int) map[int][]string {
	classes := map[int][]string{}
	for _, part := range strings.Split(ranges, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to := part, part
		if a, b, ok := strings.Cut(part, "-"); ok {
			from, to = strings.TrimSpace(a), strings.TrimSpace(b)
		}
		start, err1 := strconv.Atoi(from)
		end, err2 := strconv.Atoi(to)
		if err1 != nil || err2 != nil || start < 1 || end < start {
			continue
		}
		for line := start; line <= end && line <= lineCount; line++ {
			addClass(classes, line-1, HighlightedLineClass)
		}
	}
	if len(classes) == 0 {
		return nil
	}
	return classes
}

func applyMagicComments(code string) (string, map[int][]string) {
	lines := strings.Split(code, "\n")
	kept := make([]string, 0, len(lines))
	classes := map[int][]string{}
	nextLine := false
	blockDepth := 0
	removed := false

	for _, line := range lines {
		match := magicComment.FindStringSubmatch(line)
		if match != nil {
			switch match[1] {
			case "highlight-next-line":
				nextLine = true
			case "highlight-start":
				blockDepth++
			case "highlight-end":
				if blockDepth > 0 {
					blockDepth--
				}
			}
			removed = true
			continue
		}
		if nextLine || blockDepth > 0 {
			addClass(classes, len(kept), HighlightedLineClass)
			nextLine = false
		}
		kept = append(kept, line)
	}
	if !removed {
		return code, nil
	}
	if len(classes) == 0 {
		classes = nil
	}
	return strings.Join(kept, "\n"), classes
}

func addClass(classes map[int][]string, line int, class string) {
	if !slices.Contains(classes[line], class) {
		classes[line] = append(classes[line], class)
	}
}
