package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// CleanText strips non-printable characters and collapses whitespace.
func CleanText(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	out := strings.TrimSpace(newStr.String())
	return innerWhitespace.ReplaceAllString(out, " ")
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors returns the text and raw href of every node in sel. Nodes
// without an href are skipped.
func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}
		if href == "" {
			continue
		}
		anchors = append(anchors, Anchor{
			Name: CleanText(GetText(n)),
			Href: href,
		})
	}
	return anchors
}

// InputValue returns the value attribute of the first input named name.
func InputValue(doc *goquery.Document, name string) (string, bool) {
	return doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		n, _ := s.Attr("name")
		return n == name
	}).First().Attr("value")
}
