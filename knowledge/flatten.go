package knowledge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/stratchat"
)

// RootPrompt is the prompt attached to the whole document.
const RootPrompt = "ما هي المعلومات العامة عن وثيقة استراتيجية التحول الرقمي؟"

// identifierKeys name fields that already appear inside other prompts, so
// their scalar values are not emitted as entries of their own.
var identifierKeys = map[string]bool{
	"title":    true,
	"name":     true,
	"id":       true,
	"category": true,
}

// emptyCompletions are serialized values with nothing to answer.
var emptyCompletions = map[string]bool{
	"null": true,
	"{}":   true,
	"[]":   true,
	`""`:   true,
}

// Flatten walks the document tree and returns one generic entry per object,
// array and non-identifier scalar. Entries without answerable content are
// dropped.
func Flatten(root *Node) []stratchat.Entry {
	var entries []stratchat.Entry
	for _, e := range flatten(root, nil, nil) {
		if emptyCompletions[e.Completion] {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func flatten(n *Node, path, titles []string) []stratchat.Entry {
	if n == nil {
		return nil
	}
	if !n.IsComposite() {
		return flattenScalar(n, path, titles)
	}

	var entries []stratchat.Entry
	title := ""
	if t := n.Field("title"); t != nil && t.Kind == String {
		title = strings.TrimSpace(t.Scalar)
	}
	context := joinTitles(titles)

	var prompt string
	switch {
	case title != "":
		prompt = fmt.Sprintf(`ما هي المعلومات حول "%s"`, title)
		if context != "" {
			prompt += fmt.Sprintf(` (ضمن "%s")`, context)
		}
		prompt += "؟"
	case len(path) > 0:
		prompt = fmt.Sprintf(`ما هي تفاصيل "%s"`, path[len(path)-1])
		if context != "" {
			prompt += fmt.Sprintf(` في قسم "%s"`, context)
		}
		prompt += "؟"
	default:
		prompt = RootPrompt
	}

	sourcePath := strings.Join(path, ".")
	if sourcePath == "" {
		sourcePath = "root"
	}
	entries = append(entries, stratchat.Entry{
		Prompt:     prompt,
		Completion: n.Indent(),
		SourcePath: sourcePath,
	})

	if n.Kind == Array {
		for i, item := range n.Items {
			if !item.IsComposite() {
				continue
			}
			label := "عنصر " + itemIdentifier(item, i)
			var childTitles []string
			if len(path) > 0 {
				childTitles = []string{path[len(path)-1], label}
			} else {
				childTitles = []string{label}
			}
			entries = append(entries, flatten(item, appendPath(path, "["+strconv.Itoa(i)+"]"), childTitles)...)
		}
		return entries
	}

	childTitles := titles
	if title != "" {
		childTitles = append(append([]string(nil), titles...), title)
	}
	for _, key := range n.Keys {
		child := n.Fields[key]
		if key == "title" && child.Kind == String && child.Scalar == title {
			continue
		}
		entries = append(entries, flatten(child, appendPath(path, key), childTitles)...)
	}
	return entries
}

func flattenScalar(n *Node, path, titles []string) []stratchat.Entry {
	if len(path) == 0 {
		return nil
	}
	key := path[len(path)-1]
	if identifierKeys[key] {
		return nil
	}

	prompt := fmt.Sprintf(`ما هي قيمة "%s"`, key)
	if context := joinTitles(titles); context != "" {
		prompt += fmt.Sprintf(` في سياق "%s"`, context)
	}
	prompt += "؟"

	return []stratchat.Entry{{
		Prompt:     prompt,
		Completion: n.Indent(),
		SourcePath: strings.Join(path, "."),
	}}
}

// itemIdentifier labels an array element by its first set identifying
// field, falling back to its one-based position.
func itemIdentifier(item *Node, index int) string {
	for _, key := range []string{"title", "name", "category", "id"} {
		if f := item.Field(key); f.Truthy() && !f.IsComposite() {
			return f.Text()
		}
	}
	return "البند " + strconv.Itoa(index+1)
}

func joinTitles(titles []string) string {
	parts := make([]string, 0, len(titles))
	for _, t := range titles {
		if strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " - ")
}

func appendPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}
