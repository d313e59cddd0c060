// Package mcpserver exposes the Pipeline Coordinator's
// AnalyzeAndGenerate operation as a single Model Context Protocol tool,
// grounded on standardbeagle-lci's internal/mcp/server.go: an
// mcp.Server wrapping a typed handler, registered with a JSON input
// schema and returning a JSON-encoded mcp.TextContent result. Unlike
// that teacher's dozens of code-navigation tools, this server owns
// exactly one tool, since the pipeline has exactly one downstream
// operation to expose.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/kss2002/techgiterview-pipeline/internal/composer"
	"github.com/kss2002/techgiterview-pipeline/internal/pipeline"
)

// Coordinating is the subset of pipeline.Coordinator this server calls.
type Coordinating interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.AnalysisResult, error)
}

// Server wraps one Coordinating pipeline behind an MCP stdio transport.
type Server struct {
	Pipeline Coordinating

	server *mcp.Server
}

// analyzeParams is the tool's input schema: owner/repo/ref identify the
// repository, the rest mirror composer.Composer's tunables.
type analyzeParams struct {
	Owner         string   `json:"owner"`
	Repo          string   `json:"repo"`
	Ref           string   `json:"ref,omitempty"`
	QuestionCount int      `json:"question_count,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Types         []string `json:"types,omitempty"`
}

// New builds a Server and registers the AnalyzeAndGenerate tool.
func New(p Coordinating) *Server {
	s := &Server{
		Pipeline: p,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "repointel-mcp-server",
			Version: "0.1.0",
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_and_generate",
		Description: "Run the repository intelligence pipeline over a repository and return generated interview questions.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"owner":          {Type: "string", Description: "Repository owner or organization"},
				"repo":           {Type: "string", Description: "Repository name"},
				"ref":            {Type: "string", Description: "Branch, tag, or commit SHA (defaults to the repository's default branch)"},
				"question_count": {Type: "integer", Description: "Number of questions to generate (default 9)"},
				"difficulty":     {Type: "string", Description: "easy, medium, or hard (default medium)"},
				"types":          {Type: "array", Description: "Subset of tech_stack, architecture, code_analysis"},
			},
			Required: []string{"owner", "repo"},
		},
	}, s.handleAnalyzeAndGenerate)
}

func (s *Server) handleAnalyzeAndGenerate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params analyzeParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return errorResult("analyze_and_generate", fmt.Errorf("invalid parameters: %w", err)), nil
	}
	if params.Owner == "" || params.Repo == "" {
		return errorResult("analyze_and_generate", fmt.Errorf("owner and repo are required")), nil
	}

	types := make([]composer.QuestionType, 0, len(params.Types))
	for _, t := range params.Types {
		types = append(types, composer.QuestionType(t))
	}

	result, err := s.Pipeline.Run(ctx, pipeline.Request{
		Owner:         params.Owner,
		Repo:          params.Repo,
		Ref:           params.Ref,
		QuestionCount: params.QuestionCount,
		Difficulty:    composer.Difficulty(params.Difficulty),
		Types:         types,
	})
	if err != nil {
		log.Warn().Err(err).Str("owner", params.Owner).Str("repo", params.Repo).Msg("analyze_and_generate failed")
		return errorResult("analyze_and_generate", err), nil
	}
	return jsonResult(result)
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal tool response: %w", err)
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(body)}}}, nil
}

func errorResult(operation string, err error) *mcp.CallToolResult {
	body, _ := json.Marshal(map[string]any{
		"success":   false,
		"operation": operation,
		"error":     err.Error(),
	})
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(body)}}, IsError: true}
}

// Run starts the MCP server on stdio and blocks until ctx is cancelled
// or the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
