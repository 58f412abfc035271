package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/itsmostafa/godoxy/internal/doxygen"
)

// Arguments structs

type FindArgs struct {
	Refid string `json:"refid" jsonschema:"The Doxygen refid of the entity, e.g. classengine_1_1Engine"`
}

type ChildrenArgs struct {
	Refid string `json:"refid" jsonschema:"The Doxygen refid of the parent entity"`
}

type SearchArgs struct {
	Name  string `json:"name" jsonschema:"Case-insensitive substring of the entity name"`
	Kind  string `json:"kind,omitempty" jsonschema:"Restrict results to one kind such as class, function or group"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

const defaultSearchLimit = 50

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find",
		Description: "Returns the full documentation data of one entity by refid",
	}, s.find)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "children",
		Description: "Lists the direct children of an entity; an empty refid lists the top level",
	}, s.children)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search",
		Description: "Finds entities whose name contains a substring, optionally of one kind",
	}, s.search)
}

func (s *Server) find(ctx context.Context, req *mcp.CallToolRequest, args FindArgs) (*mcp.CallToolResult, any, error) {
	if args.Refid == "" {
		return errorResult("refid is required"), nil, nil
	}
	n, err := s.tree.Find(args.Refid)
	if err != nil {
		return errorResult(fmt.Sprintf("Node not found: %s", args.Refid)), nil, nil
	}
	return jsonResult(n.Data())
}

func (s *Server) children(ctx context.Context, req *mcp.CallToolRequest, args ChildrenArgs) (*mcp.CallToolResult, any, error) {
	parent := s.tree.Root()
	if args.Refid != "" {
		n, err := s.tree.Find(args.Refid)
		if err != nil {
			return errorResult(fmt.Sprintf("Node not found: %s", args.Refid)), nil, nil
		}
		parent = n
	}
	if len(parent.Children) == 0 {
		return textResult("No children found."), nil, nil
	}
	return jsonResult(summaries(parent.Children))
}

func (s *Server) search(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	if args.Name == "" {
		return errorResult("name is required"), nil, nil
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	nodes := s.tree.Root().Search(args.Name, doxygen.Kind(args.Kind))
	if len(nodes) == 0 {
		return textResult("No matching entities found."), nil, nil
	}
	if len(nodes) > limit {
		s.log.Debug("search truncated", "name", args.Name, "matches", len(nodes), "limit", limit)
		nodes = nodes[:limit]
	}
	return jsonResult(summaries(nodes))
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to marshal result: %v", err)), nil, nil
	}
	return textResult(string(jsonBytes)), nil, nil
}
