package net

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveClientDirExplicitPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveClientDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("resolved %q, want %q", got, dir)
	}

	// An explicit path is trusted even when it does not exist yet.
	missing := filepath.Join(dir, "later")
	got, err = ResolveClientDir(missing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != missing {
		t.Fatalf("resolved %q, want %q", got, missing)
	}
}

func TestResolveClientDirProbesWorkingDirectory(t *testing.T) {
	base := t.TempDir()
	clientDir := filepath.Join(base, "client")
	if err := os.Mkdir(clientDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(base); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	got, err := ResolveClientDir("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	expected, err := filepath.EvalSymlinks(clientDir)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if resolved != expected {
		t.Fatalf("resolved %q, want %q", resolved, expected)
	}
}

func TestResolveClientDirParentFallback(t *testing.T) {
	base := t.TempDir()
	clientDir := filepath.Join(base, "client")
	workDir := filepath.Join(base, "server")
	for _, dir := range []string{clientDir, workDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	got, err := ResolveClientDir("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	expected, err := filepath.EvalSymlinks(clientDir)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if resolved != expected {
		t.Fatalf("resolved %q, want %q", resolved, expected)
	}
}
