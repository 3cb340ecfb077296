// Package mcpserver exposes the documentation generator as Model Context
// Protocol tools.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/tsdoc/jsdoc"
	"github.com/dhamidi/tsdoc/workspace"
)

var log = commonlog.GetLogger("tsdoc.mcp")

// Input types for tools
type GenerateInput struct {
	Source           string `json:"source" jsonschema:"TypeScript source text to document"`
	IgnoreInheritDoc bool   `json:"ignore_inheritdoc,omitempty" jsonschema:"Complete comments that contain @inheritDoc instead of leaving them alone"`
}

type CheckInput struct {
	Path string `json:"path" jsonschema:"File or project directory to check"`
}

// New returns a server with the generate_docs and check_docs tools.
func New(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tsdoc",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_docs",
		Description: "Add missing JSDoc tags (@class, @interface, @method, @param, @returns, @property and modifiers) to TypeScript source. Existing text is never removed. Returns the augmented source.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_docs",
		Description: "List the TypeScript files under a path whose documentation comments lack tags. Files are not modified.",
	}, handleCheck)

	return server
}

// Run serves the tools on stdio until ctx is done or the client leaves.
func Run(ctx context.Context, version string) error {
	return New(version).Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

func handleGenerate(ctx context.Context, req *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, any, error) {
	out := jsdoc.GenerateWith(input.Source, jsdoc.Options{IgnoreInheritDoc: input.IgnoreInheritDoc})
	log.Debugf("generate_docs: %d bytes in, %d bytes out", len(input.Source), len(out))
	return textResult(out), nil, nil
}

func handleCheck(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return errorResult("path is required"), nil, nil
	}
	absRoot, err := filepath.Abs(input.Path)
	if err != nil {
		return errorResult("Invalid path: " + err.Error()), nil, nil
	}

	cfg, err := workspace.LoadConfig(configDir(absRoot))
	if err != nil {
		return errorResult("Config error: " + err.Error()), nil, nil
	}
	files, err := workspace.Discover(absRoot, cfg)
	if err != nil {
		return errorResult("Scan error: " + err.Error()), nil, nil
	}

	opts := cfg.RunOptions()
	opts.Output = workspace.Keep
	batch, err := workspace.Run(ctx, files, opts)
	if err != nil {
		return nil, nil, err
	}

	var sb strings.Builder
	for _, r := range batch.Changed() {
		fmt.Fprintf(&sb, "%s: %d insertions\n", relTo(absRoot, r.Path), r.Insertions)
	}
	for _, r := range batch.Failed() {
		fmt.Fprintf(&sb, "%s: error: %s\n", relTo(absRoot, r.Path), r.Err)
	}
	if sb.Len() == 0 {
		return textResult(fmt.Sprintf("All %d files are documented", len(batch.Results))), nil, nil
	}
	return textResult(sb.String()), nil, nil
}

// configDir is the directory the configuration search starts from.
func configDir(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(path)
}
