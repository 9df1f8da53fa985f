package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/utils"
)

const (
	actorHeader = `#pragma once

RClass()
class Actor : public Object
{
	RBody()

	RField()
	int mHealth = 100;
};
`
	modeHeader = `REnum()
enum class Mode
{
	A,
	B,
};
`
	brokenHeader = `RClass()
class Broken : public Object
{
	RField()
	int mHealth
};
`
)

func newTestGenerator(t *testing.T, opts ...config.Option) (*Generator, *bytes.Buffer) {
	t.Helper()
	o, err := config.New(opts...)
	require.NoError(t, err)

	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	reporter, buf := newBufferedReporter(false)
	return NewGenerator(o, diagnostics, reporter), buf
}

func run(t *testing.T, g *Generator, paths ...string) error {
	t.Helper()
	return g.Run(context.Background(), Config{Paths: paths, Options: g.opts})
}

func readJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestGenerator_Run(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "actor.h", actorHeader)
	writeSource(t, dir, "mode.h", modeHeader)
	writeSource(t, dir, "plain.h", "int x;\n")

	g, reported := newTestGenerator(t)
	require.NoError(t, run(t, g, dir))
	assert.Empty(t, reported.String())

	summary := g.GetSummary()
	assert.Equal(t, 3, summary.FilesScanned)
	assert.Equal(t, 2, summary.FilesReflected)
	assert.Equal(t, 0, summary.FilesFailed)
	assert.Equal(t, 1, summary.ClassesFound)
	assert.Equal(t, 1, summary.EnumsFound)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "actor.h.mirror.json"),
		filepath.Join(dir, "mode.h.mirror.json"),
	}, summary.GeneratedFiles)
	assert.NoFileExists(t, filepath.Join(dir, "plain.h.mirror.json"))

	var mirror map[string]interface{}
	readJSON(t, filepath.Join(dir, "actor.h.mirror.json"), &mirror)
	assert.Equal(t, filepath.Join(dir, "actor.h"), mirror["SourceFilePath"])
	classes := mirror["Classes"].(map[string]interface{})
	require.Contains(t, classes, "Actor")
	assert.Equal(t, "Object", classes["Actor"].(map[string]interface{})["ParentClass"])

	assert.Equal(t, 2, g.Registry().Len())
}

func TestGenerator_UpToDate(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "actor.h", actorHeader)
	mirror := source + utils.MirrorSuffix

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(source, past, past))
	require.NoError(t, os.WriteFile(mirror, []byte("stale"), 0644))

	t.Run("newer output is kept", func(t *testing.T) {
		g, _ := newTestGenerator(t)
		require.NoError(t, run(t, g, source))

		assert.Equal(t, 1, g.GetSummary().FilesUpToDate)
		assert.Empty(t, g.GetSummary().GeneratedFiles)
		data, err := os.ReadFile(mirror)
		require.NoError(t, err)
		assert.Equal(t, "stale", string(data))
	})

	t.Run("force rewrites", func(t *testing.T) {
		g, _ := newTestGenerator(t, config.WithForce())
		require.NoError(t, run(t, g, source))

		assert.Equal(t, 0, g.GetSummary().FilesUpToDate)
		assert.Equal(t, []string{mirror}, g.GetSummary().GeneratedFiles)
		data, err := os.ReadFile(mirror)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Actor"`)
	})
}

func TestGenerator_OutputDirAndDatabase(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "src/actor.h", actorHeader)
	writeSource(t, dir, "src/enums/mode.h", modeHeader)
	outDir := filepath.Join(dir, "out")
	database := filepath.Join(dir, "db", "reflection.json")

	g, _ := newTestGenerator(t, config.WithOutputDir(outDir), config.WithDatabase(database))
	require.NoError(t, run(t, g, filepath.Join(dir, "src")+"/..."))

	assert.FileExists(t, filepath.Join(outDir, "actor.h.mirror.json"))
	assert.FileExists(t, filepath.Join(outDir, "mode.h.mirror.json"))
	assert.NoFileExists(t, filepath.Join(dir, "src", "actor.h.mirror.json"))

	var db []map[string]interface{}
	readJSON(t, database, &db)
	require.Len(t, db, 2)
	assert.Equal(t, filepath.Join(dir, "src", "actor.h"), db[0]["SourceFilePath"])
	assert.Equal(t, filepath.Join(dir, "src", "enums", "mode.h"), db[1]["SourceFilePath"])
}

func TestGenerator_WithoutJSON(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "actor.h", actorHeader)

	g, _ := newTestGenerator(t, config.WithoutJSON())
	require.NoError(t, run(t, g, source))

	assert.Equal(t, 1, g.GetSummary().FilesReflected)
	assert.NoFileExists(t, source+utils.MirrorSuffix)
}

func TestGenerator_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "actor.h", actorHeader)
	bad := writeSource(t, dir, "broken.h", brokenHeader)
	database := filepath.Join(dir, "reflection.json")

	g, reported := newTestGenerator(t, config.WithDatabase(database))
	err := run(t, g, dir)
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.True(t, stderrors.As(err, &multi))
	require.Equal(t, 1, multi.Count())
	assert.True(t, multi.HasCode(errors.SyntaxErrorCode))

	assert.Equal(t, 1, g.GetSummary().FilesFailed)
	assert.Contains(t, reported.String(), bad+":5:")
	assert.FileExists(t, good+utils.MirrorSuffix)
	assert.NoFileExists(t, bad+utils.MirrorSuffix)

	var db []map[string]interface{}
	readJSON(t, database, &db)
	assert.Len(t, db, 1)
}

func TestGenerator_NoSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "readme.txt", "nothing here")

	g, reported := newTestGenerator(t)
	require.NoError(t, run(t, g, dir))
	assert.Equal(t, "! no source files found\n", reported.String())
}

func TestGenerator_Cancelled(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "actor.h", actorHeader)

	g, _ := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx, Config{Paths: []string{source}, Options: g.opts})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestMirrorPath(t *testing.T) {
	opts := config.NewOptions()
	assert.Equal(t, "/src/actor.h.mirror.json", MirrorPath(opts, "/src/actor.h"))

	opts.OutputDir = "/out"
	assert.Equal(t, filepath.Join("/out", "actor.h.mirror.json"), MirrorPath(opts, "/src/actor.h"))
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
