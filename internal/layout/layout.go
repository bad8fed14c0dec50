// Package layout places report content on fixed-size pages. It decides where
// each line goes and when a page breaks; rendering is left to the caller.
package layout

import (
	"strings"

	"github.com/dsablic/codecheck/internal/model"
)

// Page geometry in points, A4 portrait.
const (
	PageWidth    = 595.28
	PageHeight   = 841.89
	Margin       = 40
	ContentWidth = 515
	BreakY       = 780
)

// Vertical advances in points.
const (
	titleAdvance      = 26
	metaAdvance       = 30
	bodyAdvance       = 18
	sectionGap        = 26
	wrappedLineHeight = 14
	paragraphGap      = 10
	codeHeadingAdv    = 22
	codeLineHeight    = 12
)

const tabWidth = 4

// Font selects a typeface for a placed line.
type Font struct {
	Family string // "Helvetica" or "Courier"
	Style  string // "" or "B"
	Size   float64
}

var (
	TitleFont       = Font{Family: "Helvetica", Style: "B", Size: 18}
	MetaFont        = Font{Family: "Helvetica", Size: 10}
	BodyFont        = Font{Family: "Helvetica", Size: 12}
	HeadingFont     = Font{Family: "Helvetica", Style: "B", Size: 12}
	CodeHeadingFont = Font{Family: "Helvetica", Style: "B", Size: 14}
	CodeFont        = Font{Family: "Courier", Size: 9}
)

// Gray levels, 0 is black.
const (
	Black    = 0
	MetaGray = 120
)

// Op draws one line of text with its baseline at (X, Y).
type Op struct {
	X, Y float64
	Font Font
	Gray int
	Text string
}

// Page is the list of text placements on one page.
type Page struct {
	Ops []Op
}

// Measurer reports the rendered width of text in points.
type Measurer interface {
	Width(font Font, text string) float64
}

// cursor tracks the current position and the pages produced so far.
type cursor struct {
	pages []Page
	y     float64
}

func newCursor() *cursor {
	return &cursor{pages: []Page{{}}, y: Margin}
}

func (c *cursor) newPage() {
	c.pages = append(c.pages, Page{})
	c.y = Margin
}

// draw places text at the cursor, breaking the page first when the cursor
// has run past BreakY.
func (c *cursor) draw(font Font, gray int, text string) {
	if c.y > BreakY {
		c.newPage()
	}
	p := &c.pages[len(c.pages)-1]
	p.Ops = append(p.Ops, Op{X: Margin, Y: c.y, Font: font, Gray: gray, Text: text})
}

func (c *cursor) advance(dy float64) {
	c.y += dy
}

// Paginate lays out doc. The first page holds the summary sections; a code
// section starts on a fresh page and continues onto as many pages as needed.
func Paginate(doc model.ReportDocument, m Measurer) []Page {
	c := newCursor()
	prev := model.SectionKind("")

	for _, s := range doc.Sections {
		switch s.Kind {
		case model.SectionTitle:
			c.draw(TitleFont, Black, s.Text)
			c.advance(titleAdvance)
		case model.SectionMeta:
			c.draw(MetaFont, MetaGray, s.Text)
			c.advance(metaAdvance)
		case model.SectionDetection:
			c.draw(BodyFont, Black, s.Text)
		case model.SectionConfidence, model.SectionOriginality:
			c.advance(bodyAdvance)
			c.draw(BodyFont, Black, s.Text)
		case model.SectionExplanation:
			c.advance(sectionGap)
			c.draw(HeadingFont, Black, s.Heading)
			c.advance(bodyAdvance)
			lines := Wrap(s.Text, BodyFont, ContentWidth, m)
			for _, line := range lines {
				c.draw(BodyFont, Black, line)
				c.advance(wrappedLineHeight)
			}
			c.advance(paragraphGap)
		case model.SectionIndicators:
			if prev != model.SectionExplanation {
				c.advance(sectionGap)
			}
			c.draw(HeadingFont, Black, s.Heading)
			c.advance(bodyAdvance)
			for _, item := range s.Items {
				for _, line := range Wrap("• "+item, BodyFont, ContentWidth, m) {
					c.draw(BodyFont, Black, line)
					c.advance(wrappedLineHeight)
				}
			}
		case model.SectionCode:
			c.newPage()
			c.draw(CodeHeadingFont, Black, s.Heading)
			c.advance(codeHeadingAdv)
			code := strings.ReplaceAll(s.Text, "\t", strings.Repeat(" ", tabWidth))
			for _, line := range Wrap(code, CodeFont, ContentWidth, m) {
				c.draw(CodeFont, Black, line)
				c.advance(codeLineHeight)
			}
		}
		prev = s.Kind
	}

	return c.pages
}

// Wrap splits text on newlines and word-wraps each paragraph to width.
// Runs of spaces are kept, so indentation survives; words wider than the
// line are broken between runes.
func Wrap(text string, font Font, width float64, m Measurer) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(para, font, width, m)...)
	}
	return out
}

func wrapParagraph(para string, font Font, width float64, m Measurer) []string {
	if m.Width(font, para) <= width {
		return []string{para}
	}

	var lines []string
	line := ""
	started := false
	for _, word := range strings.Split(para, " ") {
		candidate := word
		if started {
			candidate = line + " " + word
		}
		if m.Width(font, candidate) <= width {
			line = candidate
			started = true
			continue
		}
		if started {
			lines = append(lines, line)
		}
		pieces := breakWord(word, font, width, m)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
		started = true
	}
	if started {
		lines = append(lines, line)
	}
	return lines
}

func breakWord(word string, font Font, width float64, m Measurer) []string {
	var pieces []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && m.Width(font, string(next)) > width {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(pieces, string(cur))
}
