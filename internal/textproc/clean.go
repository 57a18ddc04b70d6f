// Package textproc turns raw review bodies into the token stream shared by
// vocabulary building and sequence encoding.
package textproc

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// newPlainRenderer has Smartypants off so apostrophes and quotes survive as
// typed. Renderers carry per-document state and are not shared.
func newPlainRenderer() *blackfriday.HTMLRenderer {
	return blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.HTMLFlagsNone,
	})
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown to HTML and keeps only the text
// nodes, so review bodies pasted from rich editors tokenize like plain text.
func ConvertMarkdownToText(input string) string {
	rendered := blackfriday.Run([]byte(RemoveLinks(input)), blackfriday.WithNoExtensions(), blackfriday.WithRenderer(newPlainRenderer()))
	return HTMLToText(string(rendered))
}

// HTMLToText drops script and style content and collapses whitespace.
func HTMLToText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.Join(strings.Fields(content), " ")
	}

	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		}
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
			text.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)

	return strings.Join(strings.Fields(text.String()), " ")
}
