package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/codecbench/codecbench/harness"
)

func setCorpusRoot(t *testing.T, root string) {
	t.Helper()
	prev := viper.GetString("corpus-root")
	viper.Set("corpus-root", root)
	t.Cleanup(func() { viper.Set("corpus-root", prev) })
}

func TestEnumerateCorpus_MissingRootIsConfigError(t *testing.T) {
	setCorpusRoot(t, filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := enumerateCorpus()
	if err == nil {
		t.Fatal("expected error for missing corpus root")
	}
	if !harness.IsConfigError(err) {
		t.Errorf("got %T (%v), want ConfigError", err, err)
	}
}

func TestEnumerateCorpus_FileRootIsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	setCorpusRoot(t, path)

	_, err := enumerateCorpus()
	if !harness.IsConfigError(err) {
		t.Errorf("got %T (%v), want ConfigError", err, err)
	}
}

func TestEnumerateCorpus_EmptyRootIsNotAnError(t *testing.T) {
	setCorpusRoot(t, t.TempDir())

	files, err := enumerateCorpus()
	if err != nil {
		t.Fatalf("enumerateCorpus: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files from empty corpus", len(files))
	}
}

func TestRunSingle_MissingFileIsConfigError(t *testing.T) {
	err := runSingle(filepath.Join(t.TempDir(), "nope.png"))
	if !harness.IsConfigError(err) {
		t.Errorf("got %T (%v), want ConfigError", err, err)
	}
}

func TestRunSingle_DirectoryIsConfigError(t *testing.T) {
	err := runSingle(t.TempDir())
	if !harness.IsConfigError(err) {
		t.Errorf("got %T (%v), want ConfigError", err, err)
	}
}
