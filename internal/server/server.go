// Package server exposes a loaded documentation tree over the Model Context
// Protocol on stdio.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/itsmostafa/godoxy/internal/doxygen"
	"github.com/itsmostafa/godoxy/internal/logging"
	"github.com/itsmostafa/godoxy/internal/version"
)

// Tree is the part of the loader the server reads from.
type Tree interface {
	Root() *doxygen.Node
	Find(refid string) (*doxygen.Node, error)
}

// Server answers lookup requests against a Tree.
type Server struct {
	tree      Tree
	stats     doxygen.Stats
	log       logging.Logger
	mcpServer *mcp.Server
}

// New returns a Server with its tools and resources registered.
func New(tree Tree, stats doxygen.Stats, log logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		tree:  tree,
		stats: stats,
		log:   log,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "godoxy",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves requests on stdin/stdout until the client disconnects or ctx is
// done.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving on stdio", "nodes", s.stats.Nodes)
	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "godoxy://index",
		Name:        "Top-level index",
		Description: "Summaries of the top-level compounds and the load statistics",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		text, err := s.indexJSON()
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      "godoxy://index",
					MIMEType: "application/json",
					Text:     text,
				},
			},
		}, nil
	})
}

func (s *Server) indexJSON() (string, error) {
	data := map[string]any{
		"compounds": summaries(s.tree.Root().Children),
		"stats": map[string]any{
			"compounds": s.stats.Compounds,
			"invalid":   s.stats.Invalid,
			"failed":    s.stats.Failed(),
			"nodes":     s.stats.Nodes,
			"topLevel":  s.stats.TopLevel,
		},
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal index: %w", err)
	}
	return string(b), nil
}

func summaries(nodes []*doxygen.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Summary())
	}
	return out
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
