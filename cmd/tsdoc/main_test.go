package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	var cmd *cobra.Command
	switch args[0] {
	case "gen":
		cmd = newGenCmd()
	case "check":
		cmd = newCheckCmd()
	case "grammar":
		cmd = newGrammarCmd()
	default:
		t.Fatalf("unknown command %q", args[0])
	}
	cmd.SetArgs(args[1:])
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenStdin(t *testing.T) {
	out, err := run(t, "class A {}", "gen")
	if err != nil {
		t.Fatal(err)
	}
	if want := "/**\n * @class A\n */\nclass A {}"; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestGenSingleFileToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	if err := os.WriteFile(path, []byte("interface I {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "gen", path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "/**\n * @interface I\n */\ninterface I {}\n"; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if data, _ := os.ReadFile(path); string(data) != "interface I {}\n" {
		t.Error("gen without -w modified the file")
	}
}

func TestGenWriteDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ts", "b.ts"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("class X {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := run(t, "", "gen", dir); err == nil {
		t.Error("gen of a directory without -w should fail")
	}

	out, err := run(t, "", "gen", "-w", dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "wrote ") != 2 {
		t.Errorf("out = %q, want two wrote lines", out)
	}

	if _, err := run(t, "", "check", dir); err != nil {
		t.Errorf("check after gen -w = %v", err)
	}
}

func TestCheckReportsChanges(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("class A {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "check", dir)
	if err == nil {
		t.Fatal("check should fail when tags are missing")
	}
	if !strings.Contains(out, "needs tags") {
		t.Errorf("out = %q", out)
	}
}

func TestGrammarCheck(t *testing.T) {
	out, err := run(t, "", "grammar", "--check")
	if err != nil {
		t.Fatalf("grammar --check: %v\n%s", err, out)
	}
	for _, start := range []string{"Declaration", "Member", "Comment"} {
		if !strings.Contains(out, start+": ok") {
			t.Errorf("out lacks %s: ok\n%s", start, out)
		}
	}
}
