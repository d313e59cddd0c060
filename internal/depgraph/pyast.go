package depgraph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// PythonASTExtractor runs a tree-sitter parse of a Python file as the
// "more accurate" second extractor spec.md §4.3 calls for ("AST pass as
// a second, more accurate extractor when the file parses"), grounded on
// standardbeagle-lci's parser setup (parser_language_setup.go's
// setupPython query) and match-capture walk
// (parser.go's extractBasicSymbolsStringRef).
type PythonASTExtractor struct {
	parser   *tree_sitter.Parser
	query    *tree_sitter.Query
	language *tree_sitter.Language
}

// NewPythonASTExtractor constructs a reusable tree-sitter parser/query
// pair for Python import statements.
func NewPythonASTExtractor() (*PythonASTExtractor, error) {
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, err
	}
	query, err := tree_sitter.NewQuery(language, `
		(import_statement) @import
		(import_from_statement) @import
	`)
	if err != nil {
		return nil, err
	}
	return &PythonASTExtractor{parser: parser, query: query, language: language}, nil
}

// Close releases the underlying tree-sitter resources.
func (p *PythonASTExtractor) Close() {
	if p == nil {
		return
	}
	if p.query != nil {
		p.query.Close()
	}
	if p.parser != nil {
		p.parser.Close()
	}
}

// Extract parses content as Python and returns the module names named by
// every import/import-from statement. A parse failure (content does not
// parse as Python) yields (nil, false) so the caller falls back to the
// regex cascade.
func (p *PythonASTExtractor) Extract(content string) ([]string, bool) {
	if p == nil || p.parser == nil {
		return nil, false
	}
	src := []byte(content)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, false
	}
	defer tree.Close()
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, false
	}

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()
	matches := cursor.Matches(p.query, root, src)

	seen := make(map[string]bool)
	var out []string
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, capture := range match.Captures {
			text := strings.TrimSpace(capture.Node.Utf8Text(src))
			for _, target := range parseImportStatementText(text) {
				if target == "" || seen[target] {
					continue
				}
				seen[target] = true
				out = append(out, target)
			}
		}
	}
	return out, true
}

// parseImportStatementText pulls module names out of the raw statement
// text ("import a.b, c" / "from a.b import c"), since the query captures
// whole statement nodes rather than just the module-name subtree.
func parseImportStatementText(stmt string) []string {
	stmt = strings.TrimSpace(stmt)
	switch {
	case strings.HasPrefix(stmt, "from "):
		rest := strings.TrimPrefix(stmt, "from ")
		if idx := strings.Index(rest, " import"); idx >= 0 {
			return []string{strings.TrimSpace(rest[:idx])}
		}
		return nil
	case strings.HasPrefix(stmt, "import "):
		rest := strings.TrimPrefix(stmt, "import ")
		var out []string
		for _, part := range strings.Split(rest, ",") {
			part = strings.TrimSpace(part)
			if as := strings.Index(part, " as "); as >= 0 {
				part = strings.TrimSpace(part[:as])
			}
			if part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}
