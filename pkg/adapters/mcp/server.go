// Package mcp exposes the editor as an MCP server, so agent tooling can
// inspect stories and drive generation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fabulark/fabula"
	"github.com/fabulark/fabula/internal/presentation/graph"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StorySummary is the list representation of a story.
type StorySummary struct {
	ID    string `json:"id" jsonschema_description:"The story ID"`
	Title string `json:"title" jsonschema_description:"The story title"`
}

// GenerateResult reports the outcome of a generation run.
type GenerateResult struct {
	Generated int    `json:"generated" jsonschema_description:"Number of nodes generated"`
	Total     int    `json:"total" jsonschema_description:"Number of generatable nodes"`
	LastLabel string `json:"last_label,omitempty" jsonschema_description:"Label of the last generated node"`
}

// Server wraps the Editor and exposes it as an MCP Server.
type Server struct {
	editor    *fabula.Editor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(editor *fabula.Editor) *Server {
	s := &Server{
		editor:    editor,
		mcpServer: server.NewMCPServer("fabula-mcp", strings.TrimSpace(fabula.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// corsMiddleware allows browser-based MCP debuggers to reach the SSE endpoints.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_stories
	s.mcpServer.AddTool(mcp.NewTool("list_stories",
		mcp.WithDescription("List the stories in the collection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries := make([]StorySummary, 0)
		for _, id := range s.editor.StoryIDs() {
			story, err := s.editor.Story(id)
			if err != nil {
				continue
			}
			summaries = append(summaries, StorySummary{ID: id, Title: story.Title})
		}
		jsonBytes, _ := json.Marshal(summaries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_story
	s.mcpServer.AddTool(mcp.NewTool("get_story",
		mcp.WithDescription("Get the full serialized document of a story."),
		mcp.WithString("story_id", mcp.Required(), mcp.Description("The story ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("story_id", "")
		data, err := s.editor.ExportStory(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get story failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a story's graph as a Mermaid diagram."),
		mcp.WithString("story_id", mcp.Required(), mcp.Description("The story ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("story_id", "")
		story, err := s.editor.Story(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(story.Flow)), nil
	})

	// TOOL: create_story
	s.mcpServer.AddTool(mcp.NewTool("create_story",
		mcp.WithDescription("Create a story, empty or from a serialized document."),
		mcp.WithString("document", mcp.Description("Serialized story document JSON (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if doc := request.GetString("document", ""); doc != "" {
			id, _, err := s.editor.ImportStory([]byte(doc))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
			}
			return mcp.NewToolResultText(id), nil
		}
		id, _ := s.editor.CreateStory()
		return mcp.NewToolResultText(id), nil
	})

	// TOOL: delete_story
	s.mcpServer.AddTool(mcp.NewTool("delete_story",
		mcp.WithDescription("Delete a story from the collection."),
		mcp.WithString("story_id", mcp.Required(), mcp.Description("The story ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.editor.DeleteStory(request.GetString("story_id", ""))
		return mcp.NewToolResultText("deleted"), nil
	})

	// TOOL: generate_story
	generateTool := mcp.NewTool("generate_story",
		mcp.WithDescription("Generate the texts of a story's nodes sequentially and commit the result."),
		mcp.WithString("story_id", mcp.Required(), mcp.Description("The story ID")),
		mcp.WithString("start_node", mcp.Description("Limit generation to nodes reachable from this node (optional)")),
		mcp.WithOutputSchema[GenerateResult](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResult, error) {
	id, _ := args["story_id"].(string)

	var opts []fabula.RunOption
	if start, ok := args["start_node"].(string); ok && start != "" {
		opts = append(opts, fabula.FromNode(start))
	}

	run, err := s.editor.Generate(id, opts...)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate failed: %w", err)
	}

	result := GenerateResult{Total: run.Total()}
	for !run.Done() {
		p, err := run.Step(ctx)
		if err != nil {
			return result, fmt.Errorf("generation aborted at %d/%d: %w", p.Current, p.Total, err)
		}
		result.Generated = p.Current
		result.LastLabel = p.Label
	}
	if _, err := run.Commit(); err != nil {
		return result, fmt.Errorf("commit failed: %w", err)
	}
	return result, nil
}

func (s *Server) registerResources() {
	// EXPOSE: fabula://stories
	s.mcpServer.AddResource(mcp.NewResource("fabula://stories", "Story Collection",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		collection := make(map[string]*domain.Story)
		for _, id := range s.editor.StoryIDs() {
			if story, err := s.editor.Story(id); err == nil {
				collection[id] = story
			}
		}
		jsonBytes, err := json.Marshal(collection)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal stories: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fabula://stories",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
