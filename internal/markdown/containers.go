package markdown

import (
	"bytes"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const minContainerFence = 3

// containerParser reads ":::kind [title]" ... ":::" blocks. The closing line
// must use the same number of colons as the opening one, so containers nest
// by lengthening the outer fence (":::: note" around "::: tip").
type containerParser struct{}

func containerParserOption() parser.Option {
	return parser.WithBlockParsers(util.Prioritized(&containerParser{}, 90))
}

func (p *containerParser) Trigger() []byte { return []byte{':'} }

func (p *containerParser) Open(parent gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}
	rest := line[pos:]
	fence := colonRun(rest)
	if fence < minContainerFence {
		return nil, parser.NoChildren
	}
	kind, title := parseContainerInfo(string(rest[fence:]))
	if kind == "" {
		return nil, parser.NoChildren
	}

	node := NewAdmonition(kind, title)
	node.fence = fence
	reader.Advance(len(line) - trailingNewline(line))
	return node, parser.HasChildren
}

func (p *containerParser) Continue(node gmast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	trimmed := bytes.TrimSpace(line)
	n := node.(*Admonition)
	if len(trimmed) == n.fence && colonRun(trimmed) == n.fence {
		reader.Advance(segment.Len())
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *containerParser) Close(node gmast.Node, reader text.Reader, pc parser.Context) {}

func (p *containerParser) CanInterruptParagraph() bool { return true }

func (p *containerParser) CanAcceptIndentedLine() bool { return false }

// parseContainerInfo splits "note Title", "note[Title]" or "note" into kind and title.
func parseContainerInfo(info string) (kind, title string) {
	info = strings.TrimSpace(info)
	end := strings.IndexFunc(info, func(r rune) bool {
		return !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end < 0 {
		return info, ""
	}
	kind, rest := info[:end], strings.TrimSpace(info[end:])
	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}
	return kind, rest
}

func colonRun(b []byte) int {
	n := 0
	for n < len(b) && b[n] == ':' {
		n++
	}
	return n
}

func trailingNewline(line []byte) int {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return 2
	case bytes.HasSuffix(line, []byte("\n")):
		return 1
	}
	return 0
}
