package todo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Task is one checkbox item under an entry heading.
type Task struct {
	Text string
	Done bool
}

// Entry is a level-two heading with the tasks listed beneath it.
type Entry struct {
	Title string
	// Link is the heading link destination with any trailing slash removed,
	// empty for headings without a link.
	Link  string
	Tasks []Task
}

// Open reports whether any task under the entry is unchecked.
func (e Entry) Open() bool {
	for _, task := range e.Tasks {
		if !task.Done {
			return true
		}
	}
	return false
}

// Summary is the parsed view of a task document.
type Summary struct {
	// Title comes from the front matter "title" key, falling back to the
	// first level-one heading.
	Title   string
	Entries []Entry
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// Parse reads the document and returns its entries in document order.
func (d *Document) Parse() (Summary, error) {
	source, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return Summary{}, fmt.Errorf("read task document: %w", err)
	}
	return ParseSource(source)
}

// ParseSource parses markdown task document content.
func ParseSource(source []byte) (Summary, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.TaskList,
			&frontmatter.Extender{},
		),
	)
	pctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	var summary Summary
	if data := frontmatter.Get(pctx); data != nil {
		var meta frontMatter
		if err := data.Decode(&meta); err != nil {
			return Summary{}, fmt.Errorf("decode front matter: %w", err)
		}
		summary.Title = strings.TrimSpace(meta.Title)
	}

	var current *Entry
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			switch {
			case n.Level == 1 && summary.Title == "":
				summary.Title = nodeText(n, source)
			case n.Level == 2:
				summary.Entries = append(summary.Entries, headingEntry(n, source))
				current = &summary.Entries[len(summary.Entries)-1]
			}
		case *ast.List:
			if current != nil {
				current.Tasks = append(current.Tasks, listTasks(n, source)...)
			}
		}
	}
	return summary, nil
}

func headingEntry(heading *ast.Heading, source []byte) Entry {
	entry := Entry{Title: nodeText(heading, source)}
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if link, ok := child.(*ast.Link); ok {
			entry.Title = nodeText(link, source)
			entry.Link = strings.TrimSuffix(string(link.Destination), "/")
			break
		}
	}
	return entry
}

func listTasks(list *ast.List, source []byte) []Task {
	var tasks []Task
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		block := item.FirstChild()
		if block == nil {
			continue
		}
		box, ok := block.FirstChild().(*extast.TaskCheckBox)
		if !ok {
			continue
		}
		tasks = append(tasks, Task{
			Text: strings.TrimSpace(nodeText(block, source)),
			Done: box.IsChecked,
		})
	}
	return tasks
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			for c := t.FirstChild(); c != nil; c = c.NextSibling() {
				if seg, ok := c.(*ast.Text); ok {
					buf.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
