// Package ingest turns external documents into plain text suitable for
// the AI gateway. Currently that means HTML recipe pages.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ignoreTags marks elements whose text content never belongs in a recipe.
// The head element itself is traversed so <title> can be captured; its
// text-bearing children are all listed here.
var ignoreTags = map[string]bool{
	"script": true, "style": true, "nav": true,
	"footer": true, "aside": true, "form": true, "noscript": true,
	"iframe": true, "svg": true,
}

// blockTags trigger a paragraph break in the extracted text.
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true,
	"div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"tr": true, "ul": true, "br": true,
}

// Page is the text-level view of an ingested HTML document.
type Page struct {
	Title string
	Text  string
}

// ExtractPage parses HTML from r and flattens it to readable plain text,
// one paragraph per block-level element. The <title> content (or the
// first <h1> when the title is empty) becomes Page.Title.
func ExtractPage(r io.Reader) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var page Page
	var firstH1 string
	var buf strings.Builder

	var traverse func(n *html.Node)
	traverse = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode {
			if ignoreTags[n.Data] {
				return
			}
			if n.Data == "title" && page.Title == "" {
				page.Title = strings.TrimSpace(textContent(n))
				return
			}
			if n.Data == "h1" && firstH1 == "" {
				firstH1 = strings.TrimSpace(textContent(n))
			}
		}

		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
				buf.WriteString("\n")
			}
		}
	}
	traverse(doc)

	if page.Title == "" {
		page.Title = firstH1
	}
	page.Text = collapseBlankLines(buf.String())
	return page, nil
}

// ExtractText is the single-string convenience wrapper around ExtractPage.
func ExtractText(rawHTML string) (Page, error) {
	return ExtractPage(strings.NewReader(rawHTML))
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
