package scan

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ReadmeDigest is a structural summary of a repository README, used to give
// assessments a cheap view of documentation quality without shipping the
// whole file.
type ReadmeDigest struct {
	Headings  []string
	LinkCount int
	WordCount int
}

// DigestReadme parses a markdown README and extracts its heading outline,
// link count, and word count.
func DigestReadme(path string) (*ReadmeDigest, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading readme %s: %w", path, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	digest := &ReadmeDigest{
		WordCount: len(strings.Fields(string(source))),
	}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			var sb strings.Builder
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Value(source))
				}
			}
			if heading := strings.TrimSpace(sb.String()); heading != "" {
				digest.Headings = append(digest.Headings, heading)
			}
		case *ast.Link, *ast.AutoLink:
			digest.LinkCount++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking readme %s: %w", path, err)
	}

	return digest, nil
}

// Summary renders the digest as a compact text block for inclusion in
// assessment excerpts.
func (d *ReadmeDigest) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "README: %d words, %d links\n", d.WordCount, d.LinkCount)
	if len(d.Headings) > 0 {
		sb.WriteString("Sections: ")
		sb.WriteString(strings.Join(d.Headings, " | "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
