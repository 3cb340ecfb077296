package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dhamidi/tsdoc/jsdoc"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("result = %+v, want one content item", res)
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want *mcp.TextContent", res.Content[0])
	}
	return text.Text
}

func TestGenerate(t *testing.T) {
	src := "interface I {\n    x: number;\n}\n"
	res, _, err := handleGenerate(context.Background(), nil, GenerateInput{Source: src})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatal("unexpected error result")
	}
	if got, want := resultText(t, res), jsdoc.Generate(src); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	for name, contents := range map[string]string{
		"a.ts": "class A {}\n",
		"b.ts": "/**\n * @class B\n */\nclass B {}\n",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res, _, err := handleCheck(context.Background(), nil, CheckInput{Path: root})
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "a.ts: ") || strings.Contains(text, "b.ts") {
		t.Errorf("text = %q, want only a.ts listed", text)
	}

	data, _ := os.ReadFile(filepath.Join(root, "a.ts"))
	if string(data) != "class A {}\n" {
		t.Error("check_docs modified a file")
	}
}

func TestCheckAllDocumented(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "b.ts")
	if err := os.WriteFile(path, []byte("/**\n * @class B\n */\nclass B {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, _, err := handleCheck(context.Background(), nil, CheckInput{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); got != "All 1 files are documented" {
		t.Errorf("text = %q", got)
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"missing", filepath.Join(t.TempDir(), "missing")},
		{"no sources", t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleCheck(context.Background(), nil, CheckInput{Path: tt.path})
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Errorf("result = %q, want an error result", resultText(t, res))
			}
		})
	}
}

func TestNewRegistersTools(t *testing.T) {
	if New("test") == nil {
		t.Fatal("New returned nil")
	}
}
