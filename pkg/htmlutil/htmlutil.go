package htmlutil

import (
	"bytes"
	"strings"

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

// ScriptText returns the contents of every <script> element in the markup
// joined by newlines. ok is false when the markup has no script elements or
// could not be parsed at all.
func ScriptText(markup string) (text string, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false
	}

	var scripts []string
	for _, node := range doc.Find("script").Nodes {
		scripts = append(scripts, GetText(node))
	}
	if len(scripts) == 0 {
		return "", false
	}
	return strings.Join(scripts, "\n"), true
}
