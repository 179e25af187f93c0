package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunScriptEditsInPlace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.txt")
	lua := filepath.Join(dir, "edit.lua")
	writeFile(t, file, "world")
	writeFile(t, lua, `keyline.insert_data(0, "hello ")
print(keyline.text())`)

	var out bytes.Buffer
	opts := options{script: lua, file: file}
	if err := runScript(context.Background(), config.Default(), opts, logging.Null(), &out); err != nil {
		t.Fatalf("runScript: %v", err)
	}

	if got := readFile(t, file); got != "hello world" {
		t.Errorf("file = %q", got)
	}
	if out.String() != "hello world\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunScriptOutputFile(t *testing.T) {
	dir := t.TempDir()
	lua := filepath.Join(dir, "gen.lua")
	dest := filepath.Join(dir, "out.txt")
	writeFile(t, lua, `keyline.insert_data(0, "generated")`)

	opts := options{script: lua, output: dest}
	if err := runScript(context.Background(), config.Default(), opts, logging.Null(), &bytes.Buffer{}); err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if got := readFile(t, dest); got != "generated" {
		t.Errorf("output file = %q", got)
	}

	err := runScript(context.Background(), config.Default(), opts, logging.Null(), &bytes.Buffer{})
	if !errors.Is(err, buffer.ErrFileExists) {
		t.Errorf("second run error = %v, want ErrFileExists", err)
	}

	opts.force = true
	if err := runScript(context.Background(), config.Default(), opts, logging.Null(), &bytes.Buffer{}); err != nil {
		t.Errorf("forced run: %v", err)
	}
}

func TestRunScriptErrorLeavesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.txt")
	lua := filepath.Join(dir, "bad.lua")
	writeFile(t, file, "keep")
	writeFile(t, lua, `keyline.insert(0, "x")
keyline.remove(0)`)

	opts := options{script: lua, file: file}
	if err := runScript(context.Background(), config.Default(), opts, logging.Null(), &bytes.Buffer{}); err == nil {
		t.Fatal("expected script error")
	}
	if got := readFile(t, file); got != "keep" {
		t.Errorf("file = %q, want it untouched", got)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[logging]\nlevel = \"warn\"\n")

	cfg, err := loadConfig(options{configPath: path, logLevel: "debug", logFile: "/tmp/k.log"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.File != "/tmp/k.log" {
		t.Errorf("file = %q", cfg.Logging.File)
	}

	if _, err := loadConfig(options{configPath: path, logLevel: "loud"}); err == nil {
		t.Error("expected invalid level error")
	}
}
