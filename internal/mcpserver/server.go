// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Ansuz workspace tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/links"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/workspace"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp      *server.MCPServer
	ws       *workspace.Workspace
	renderer *render.Renderer
}

// New creates a new MCP server with all workspace tools registered.
func New(ws *workspace.Workspace, renderer *render.Renderer) *Server {
	s := &Server{ws: ws, renderer: renderer}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_workspace",
		mcp.WithDescription("List the workspace hierarchy as a directory tree. "+
			"Each line shows a folder or file name; file ids are available via read_file."),
	), s.listWorkspace)

	s.mcp.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read the Markdown content of a workspace file by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("File id (e.g. file_3)")),
	), s.readFile)

	s.mcp.AddTool(mcp.NewTool("create_file",
		mcp.WithDescription("Create a new Markdown file. Use [[wikilinks]] in the body to "+
			"reference other files by name; read the link syntax first via the "+
			"get_link_syntax tool or the ansuz://link-syntax resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("File name, conventionally ending in .md")),
		mcp.WithString("content", mcp.Description("Markdown content; empty synthesizes a titled stub")),
		mcp.WithString("parent", mcp.Description("Optional parent folder id (e.g. folder_2)")),
	), s.createFile)

	s.mcp.AddTool(mcp.NewTool("update_file",
		mcp.WithDescription("Replace the content of an existing workspace file."),
		mcp.WithString("id", mcp.Required(), mcp.Description("File id")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Replacement Markdown content")),
	), s.updateFile)

	s.mcp.AddTool(mcp.NewTool("preview_file",
		mcp.WithDescription("Render a file to HTML with wiki links resolved, as the preview pane shows it."),
		mcp.WithString("id", mcp.Required(), mcp.Description("File id")),
	), s.previewFile)

	s.mcp.AddTool(mcp.NewTool("get_link_syntax",
		mcp.WithDescription("Returns the wiki-link syntax contract used between workspace files."),
	), s.getLinkSyntax)

	// Resource: wiki-link syntax contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://link-syntax", "Wiki Link Syntax",
			mcp.WithResourceDescription("Cross-reference syntax for linking workspace files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readLinkSyntaxResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tree := s.ws.ASCIITree()
	if tree == "" {
		return mcp.NewToolResultText("workspace is empty"), nil
	}
	index, _ := json.MarshalIndent(s.ws.Files(), "", "  ")
	return mcp.NewToolResultText(tree + "\nFile index:\n" + string(index)), nil
}

func (s *Server) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	file, ok := s.ws.File(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(file.Content), nil
}

func (s *Server) createFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content := req.GetString("content", "")
	parent := req.GetString("parent", "")
	if parent != "" {
		if _, ok := s.ws.Folder(parent); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("parent folder not found: %s", parent)), nil
		}
	}
	id := s.ws.CreateFile(name, content, parent)
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (%s)", name, id)), nil
}

func (s *Server) updateFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := s.ws.File(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	s.ws.UpdateFileContent(id, content)
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", id)), nil
}

func (s *Server) previewFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	file, ok := s.ws.File(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	html, err := s.renderer.Render(file.Content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	ids, names := s.ws.FileNames()
	return mcp.NewToolResultText(links.Resolve(html, ids, names)), nil
}

func (s *Server) getLinkSyntax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(LinkSyntaxContract), nil
}

func (s *Server) readLinkSyntaxResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://link-syntax",
			MIMEType: "text/markdown",
			Text:     LinkSyntaxContract,
		},
	}, nil
}
