package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/catalog"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/config"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/testsupport"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDetections(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detections.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write detections: %v", err)
	}
	return path
}

func TestConvertCommandEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	detections := writeDetections(t, `{
  "staves": [
    {
      "label": "page_1",
      "symbols": [
        {"type": "clef", "pitch": "c-c-g"},
        {"type": "flat"},
        {"type": "mens", "pitch": "met_c"},
        {"type": "mi", "pitch": "g1"},
        {"type": "bar"}
      ]
    }
  ]
}`)

	out, err := runCommand(t, "--config", cfgPath, "convert", detections)
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}

	meiPath := filepath.Join(cfg.Paths.MEIDir, "page_1_01.mei")
	meiContent, err := os.ReadFile(meiPath)
	if err != nil {
		t.Fatalf("mei output missing: %v", err)
	}
	if !strings.Contains(string(meiContent), `meiversion="5.0"`) {
		t.Errorf("unexpected mei content:\n%s", meiContent)
	}

	mensPath := filepath.Join(cfg.Paths.HumdrumDir, "page_1_01.mens")
	mensContent, err := os.ReadFile(mensPath)
	if err != nil {
		t.Fatalf("mens output missing: %v", err)
	}
	if !strings.HasPrefix(string(mensContent), "**mens\n") {
		t.Errorf("unexpected mens content:\n%s", mensContent)
	}

	store, err := catalog.Open(cfg.Paths.CatalogDir)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer store.Close()
	docs, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(docs) != 1 || docs[0].BaseName != "page_1_01" {
		t.Fatalf("unexpected catalog rows: %+v", docs)
	}

	if !strings.Contains(out, "page_1_01.mei") {
		t.Errorf("summary table missing document:\n%s", out)
	}
}

func TestConvertCommandReportsFailedPieces(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	// No clef anywhere in the piece.
	detections := writeDetections(t, `{
  "staves": [
    {"label": "page_1", "symbols": [{"type": "mi", "pitch": "g1"}]}
  ]
}`)

	out, err := runCommand(t, "--config", cfgPath, "convert", detections)
	if err == nil {
		t.Fatalf("expected failure, got success:\n%s", out)
	}
	entries, readErr := os.ReadDir(cfg.Paths.MEIDir)
	if readErr != nil {
		t.Fatalf("read mei dir: %v", readErr)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".mei") {
			t.Fatalf("no document may be written for a clefless piece, found %s", entry.Name())
		}
	}
}

func TestCatalogCommandListsDocuments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfgPath := testsupport.WriteConfigFile(t, cfg)

	detections := writeDetections(t, `{
  "staves": [
    {
      "label": "kyrie",
      "symbols": [
        {"type": "clef", "pitch": "c-g"},
        {"type": "mi", "pitch": "c1"},
        {"type": "bar"}
      ]
    }
  ]
}`)

	if out, err := runCommand(t, "--config", cfgPath, "convert", detections); err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}

	out, err := runCommand(t, "--config", cfgPath, "catalog")
	if err != nil {
		t.Fatalf("catalog failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "kyrie_01") {
		t.Errorf("catalog output missing document:\n%s", out)
	}
	if !strings.Contains(out, "Kyrie") {
		t.Errorf("catalog output missing display label:\n%s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("generated config unusable: exists=%v err=%v", exists, err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}
