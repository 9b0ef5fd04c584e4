package markup

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mvdan/xurls"

	"kgeyst.com/proddesc/pkg/common"
)

var (
	htmlPattern    = regexp.MustCompile(`<[a-zA-Z/!][^>]*>|&[a-zA-Z]+;|&#[0-9]+;`)
	headingPattern = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`)
	bulletPattern  = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	hashtagPattern = regexp.MustCompile(`#([A-Za-z]\w*)`)
	// emphasis counts only when paired and not glued to a word, so "5*7" and "__init__" survive
	strongPattern   = regexp.MustCompile(`(^|[^\w*])\*\*(\S|\S[^*]*?\S)\*\*([^\w*]|$)`)
	emphasisPattern = regexp.MustCompile(`(^|[^\w*])\*(\S|\S[^*]*?\S)\*([^\w*]|$)`)
	codePattern     = regexp.MustCompile("`([^`]+)`")
	whitespace      = regexp.MustCompile(`\s+`)
)

// Filter removes formatting the copywriter was asked not to produce: HTML tags, links, Markdown markers, wrapping
// quotes. The result is a single paragraph.
type Filter struct{}

func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) FilterOutput(description string) string {
	text := description
	if htmlPattern.MatchString(text) {
		text = htmlToText(text)
	}
	text = xurls.Strict.ReplaceAllString(text, "")
	text = headingPattern.ReplaceAllString(text, "")
	text = bulletPattern.ReplaceAllString(text, "")
	text = strongPattern.ReplaceAllString(text, "$1$2$3")
	text = emphasisPattern.ReplaceAllString(text, "$1$2$3")
	text = codePattern.ReplaceAllString(text, "$1")
	text = hashtagPattern.ReplaceAllString(text, "$1")
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = common.RemoveDoubleQuotesIfAny(text)
	return strings.TrimSpace(common.RemoveSingleQuotesIfAny(text))
}

func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	// block elements are separated by at least a space
	doc.Find("p, div, li, br, h1, h2, h3, h4, h5, h6").AfterHtml(" ")
	return doc.Text()
}
