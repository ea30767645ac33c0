package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func runArgs(t *testing.T, a args, stdin string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := run(a, strings.NewReader(stdin), &stdout, &stderr, zap.NewNop())
	return stdout.String(), stderr.String(), err
}

func TestRunStdin(t *testing.T) {
	stdout, stderr, err := runArgs(t, args{File: "-"}, "a = 1")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	expected := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
		`{"type":"AssignmentExpression","operator":"=","left":{"type":"Identifier","name":"a"},` +
		`"right":{"type":"Literal","value":1,"raw":"1"}}}]}` + "\n"
	assert.Equal(t, expected, stdout)
}

func TestRunFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "esparse")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "a.js")
	require.NoError(t, ioutil.WriteFile(path, []byte("// c\nx"), 0644))

	stdout, _, err := runArgs(t, args{File: path, Loc: true, Range: true, Comment: true, Tokens: true}, "")
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &m))
	assert.Len(t, m["comments"], 1)
	assert.Len(t, m["tokens"], 1)
	assert.Equal(t, []interface{}{5.0, 6.0}, m["range"])
	loc := m["loc"].(map[string]interface{})
	assert.Equal(t, path, loc["source"])

	_, _, err = runArgs(t, args{File: filepath.Join(dir, "missing.js")}, "")
	assert.Error(t, err)
}

func TestRunParseError(t *testing.T) {
	stdout, _, err := runArgs(t, args{}, "a +")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, "Line 1: Unexpected end of input", err.Error())

	stdout, _, err = runArgs(t, args{Tolerant: true}, `"use strict"; with (a) {}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"errors":[{"index":14,`)
}

func TestRunIndent(t *testing.T) {
	stdout, _, err := runArgs(t, args{Indent: "\t"}, "x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "{\n\t\"type\": \"Program\",\n\t\"body\": [\n\t\t{"))
}

func TestRunEncodings(t *testing.T) {
	// "\xe9" is e-acute in windows-1252
	stdout, _, err := runArgs(t, args{InputEncoding: "latin1"}, "'\xe9'")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"value\":\"\u00e9\"")

	stdout, _, err = runArgs(t, args{InputEncoding: "latin1", OutputEncoding: "latin1"}, "'\xe9'")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"value\":\"\xe9\"")

	_, _, err = runArgs(t, args{InputEncoding: "no-such-encoding"}, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")

	_, _, err = runArgs(t, args{OutputEncoding: "no-such-encoding"}, "x")
	assert.Error(t, err)
}

func TestRunStats(t *testing.T) {
	_, stderr, err := runArgs(t, args{Stats: true, GC: true}, "var a = [1, 2, 3];")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, regexp.MustCompile(`^Time: \S+; \[\S+, \S+, \S+, \S+\]$`), lines[0])
	assert.Regexp(t, regexp.MustCompile(`^Heap: .+; \[\d+, \d+, \d+, \d+\]$`), lines[2])
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	durations := []time.Duration{time.Second, 2 * time.Millisecond, 4 * time.Millisecond, 6 * time.Millisecond}
	printStats(&buf, durations, []uint64{2048, 1000, 1000, 1000})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Time: 4ms; [1s, 2ms, 4ms, 6ms]", lines[0])
	assert.Equal(t, "Heap: 1.3 kB; [2048, 1000, 1000, 1000]", lines[2])
}

func TestRunTrace(t *testing.T) {
	_, stderr, err := runArgs(t, args{Trace: true}, "x")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Program (")
}

func TestRunLogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var stdout, stderr bytes.Buffer
	err := run(args{File: "-"}, strings.NewReader("a.b(c)"), &stdout, &stderr, zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("parsed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 6, fields["bytes"])
	assert.EqualValues(t, 7, fields["nodes"])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)
	logger.Info("hidden")
	logger.Error("shown", zap.String("k", "v"))
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `{"k": "v"}`)
}

func TestRunAutoEncoding(t *testing.T) {
	// valid utf-8 is kept as is
	stdout, _, err := runArgs(t, args{InputEncoding: "auto"}, "'\u00e9'")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"value\":\"\u00e9\"")

	// anything else is converted with a detected charset
	src := "var s = 'Le caf\xe9 est tr\xe8s bon, la cr\xe8me br\xfbl\xe9e aussi, et le g\xe2teau est d\xe9licieux.';"
	stdout, _, err = runArgs(t, args{InputEncoding: "AUTO"}, src)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestDecodeSource(t *testing.T) {
	out, err := decodeSource([]byte("a"), "")
	require.NoError(t, err)
	assert.Equal(t, "a", string(out))

	tests := []struct {
		src      string
		encoding string
		expected string
	}{
		{"\xff\xfea\x00", "utf-16le", "a"},
		{"a\x00", "utf-16le", "a"},
		{"\xfe\xff\x00a", "utf-16be", "a"},
		{"\xef\xbb\xbfa", "latin1", "a"},
		{"\xe9", "latin1", "\u00e9"},
	}
	for _, test := range tests {
		out, err := decodeSource([]byte(test.src), test.encoding)
		require.NoError(t, err, test.encoding)
		assert.Equal(t, test.expected, string(out), "%q as %s", test.src, test.encoding)
	}
}

func TestExitFailure(t *testing.T) {
	assert.Equal(t, 173, exitFailure)
}
