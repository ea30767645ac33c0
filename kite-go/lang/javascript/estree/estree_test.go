package estree

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func parse(t *testing.T, src string, opts parser.Options) *ast.ProgramNode {
	opts.NoCache = true
	prog, err := parser.Parse([]byte(src), opts)
	require.NoError(t, err)
	return prog
}

func marshal(t *testing.T, n ast.Node, opts Options) string {
	buf, err := Marshal(n, opts)
	require.NoError(t, err)
	return string(buf)
}

func decode(t *testing.T, s string) map[string]interface{} {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestCompact(t *testing.T) {
	prog := parse(t, `a = 1`, parser.DefaultOptions)

	expected := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
		`{"type":"AssignmentExpression","operator":"=","left":{"type":"Identifier","name":"a"},` +
		`"right":{"type":"Literal","value":1,"raw":"1"}}}]}`
	assert.Equal(t, expected, marshal(t, prog, Options{}))
}

func TestIndent(t *testing.T) {
	prog := parse(t, `x; []`, parser.DefaultOptions)

	expected := `{
  "type": "Program",
  "body": [
    {
      "type": "ExpressionStatement",
      "expression": {
        "type": "Identifier",
        "name": "x"
      }
    },
    {
      "type": "ExpressionStatement",
      "expression": {
        "type": "ArrayExpression",
        "elements": []
      }
    }
  ]
}`
	assert.Equal(t, expected, marshal(t, prog, Options{Indent: "  "}))
}

func TestRangeAndLocation(t *testing.T) {
	opts := parser.DefaultOptions
	opts.Loc = true
	opts.Source = "a.js"
	prog := parse(t, "\n  a", opts)

	m := decode(t, marshal(t, prog, Options{Range: true}))
	stmt := m["body"].([]interface{})[0].(map[string]interface{})

	assert.Equal(t, []interface{}{3.0, 4.0}, stmt["range"])
	expectedLoc := map[string]interface{}{
		"start":  map[string]interface{}{"line": 2.0, "column": 2.0},
		"end":    map[string]interface{}{"line": 2.0, "column": 3.0},
		"source": "a.js",
	}
	if diff := cmp.Diff(expectedLoc, stmt["loc"]); diff != "" {
		t.Errorf("unexpected loc (-want +got):\n%s", diff)
	}

	// without locations in the tree and without the range option,
	// neither member is written
	prog = parse(t, "a", parser.DefaultOptions)
	stmt = decode(t, marshal(t, prog, Options{}))["body"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, stmt, "range")
	assert.NotContains(t, stmt, "loc")
}

func TestMemberOrder(t *testing.T) {
	prog := parse(t, `function f(a) {} a.b; try {} catch (e) {}`, parser.DefaultOptions)

	out := marshal(t, prog, Options{Range: true})
	assert.Contains(t, out, `{"type":"FunctionDeclaration","id":{"type":"Identifier","name":"f","range":[9,10]},`+
		`"params":[{"type":"Identifier","name":"a","range":[11,12]}],"defaults":[],`+
		`"body":{"type":"BlockStatement","body":[],"range":[14,16]},"rest":null,"generator":false,"expression":false,"range":[0,16]}`)
	assert.Contains(t, out, `{"type":"MemberExpression","computed":false,"object":`)
	assert.Contains(t, out, `"guardedHandlers":[],"handlers":[{"type":"CatchClause","param":`)
	assert.Contains(t, out, `"finalizer":null`)
}

func TestLiteralValues(t *testing.T) {
	tcs := []struct {
		src      string
		expected string
	}{
		{`null`, `"value":null,"raw":"null"`},
		{`true`, `"value":true,"raw":"true"`},
		{`0x10`, `"value":16,"raw":"0x10"`},
		{`1e21`, `"value":1e+21,"raw":"1e21"`},
		{`1e400`, `"value":null,"raw":"1e400"`},
		{`"a\tb"`, `"value":"a\tb","raw":"\"a\\tb\""`},
		{`/x/mgi`, `"value":"/x/gim","raw":"/x/mgi"`},
		{`/x/m`, `"value":"/x/m","raw":"/x/m"`},
	}

	for _, tc := range tcs {
		t.Run(tc.src, func(t *testing.T) {
			prog := parse(t, tc.src, parser.DefaultOptions)
			assert.Contains(t, marshal(t, prog, Options{}), tc.expected)
		})
	}
}

func TestOperatorsAndKinds(t *testing.T) {
	prog := parse(t, `x = {get a() {}, b: -c >>> 1 && d++}`, parser.DefaultOptions)
	out := marshal(t, prog, Options{})

	for _, s := range []string{
		`"operator":"="`,
		`"kind":"get"`,
		`"kind":"init"`,
		`"operator":"-","argument":{"type":"Identifier","name":"c"},"prefix":true`,
		`"operator":">>>"`,
		`"operator":"&&"`,
		`{"type":"UpdateExpression","operator":"++","argument":{"type":"Identifier","name":"d"},"prefix":false}`,
	} {
		assert.Contains(t, out, s)
	}
}

func TestProgramExtras(t *testing.T) {
	opts := parser.DefaultOptions
	opts.Comment = true
	opts.Tokens = true
	opts.Tolerant = true
	prog := parse(t, "// hi\na = ; b", opts)

	m := decode(t, marshal(t, prog, Options{Range: true}))

	assert.Equal(t, []interface{}{
		map[string]interface{}{"type": "Line", "value": " hi", "range": []interface{}{0.0, 5.0}},
	}, m["comments"])

	tokens := m["tokens"].([]interface{})
	require.NotEmpty(t, tokens)
	assert.Equal(t, map[string]interface{}{"type": "Identifier", "value": "a", "range": []interface{}{6.0, 7.0}}, tokens[0])

	errs := m["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, map[string]interface{}{
		"index":       10.0,
		"lineNumber":  2.0,
		"column":      5.0,
		"message":     "Line 2: Unexpected token ;",
		"description": "Unexpected token ;",
	}, errs[0])
}

func TestSchema(t *testing.T) {
	path, err := filepath.Abs("testdata/program.schema.json")
	require.NoError(t, err)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(path)))
	require.NoError(t, err)

	src := `
// everything at once
var a = 1, b = "s", c = /re/g;
function f(x, y) { "use strict"; return x ? y : null; }
label: for (var i = 0; i < 10; i++) { if (i in a) continue label; else break; }
for (var k in b) { with (k) { a.b[c] = new f(1, 2).z; } }
do { switch (a) { case 1: throw a; default: debugger; } } while (!a);
try { a = [1, {get p() { return this; }, set p(v) {}, "q": -1}]; } catch (e) {} finally { a, b; }
while (typeof a === "undefined" || void 0) a <<= ++b;
`

	opts := parser.DefaultOptions
	opts.Comment = true
	opts.Tokens = true
	opts.Loc = true
	opts.Tolerant = true
	prog := parse(t, src, opts)

	for _, eo := range []Options{{}, {Range: true, Indent: "\t"}} {
		buf, err := Marshal(prog, eo)
		require.NoError(t, err)

		result, err := schema.Validate(gojsonschema.NewBytesLoader(buf))
		require.NoError(t, err)
		for _, desc := range result.Errors() {
			t.Error(desc.String())
		}
		assert.True(t, result.Valid())
	}
}

func TestRepeatedParsesAreIdentical(t *testing.T) {
	srcs := []string{
		"/* c */ var a = 1, b = /x/g; // d\nfunction f(x) { return x ? a : b }",
		`x = {get a() { return 1 }, set a(v) {}}; l: for (;;) { break l }`,
		"a\nb\n++c",
	}
	opts := parser.DefaultOptions
	opts.Comment = true
	opts.Tokens = true
	opts.Loc = true

	for _, src := range srcs {
		first := parse(t, src, opts)
		expected := marshal(t, first, Options{Range: true})
		for i := 0; i < 3; i++ {
			prog := parse(t, src, opts)
			require.False(t, prog == first)
			assert.Equal(t, expected, marshal(t, prog, Options{Range: true}), src)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriteError(t *testing.T) {
	prog := parse(t, `a`, parser.DefaultOptions)

	err := Encode(failingWriter{}, prog, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, prog, Options{}))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\n\u0001\u001f"`, quote("a\"b\\c\n\x01\x1f"))
	assert.Equal(t, "\"\u00e9\"", quote("\u00e9"))
	assert.Equal(t, `"\ufffd"`, quote("\xff"))
	assert.Equal(t, "\"\u2028\"", quote("\u2028"))
}
