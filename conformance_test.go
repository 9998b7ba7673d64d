package jsontape

import (
	"fmt"
	"testing"
)

// parses to true/false mirror the y_/n_ naming convention used by
// JSON test corpora: each case documents a single grammar rule rather
// than a whole document shape.
type conformanceCase struct {
	name   string
	input  string
	accept bool
}

var conformanceCases = []conformanceCase{
	{"empty input rejected", ``, false},
	{"bare number accepted as top-level value", `0`, true},
	{"bare string accepted as top-level value", `"x"`, true},
	{"bare true accepted as top-level value", `true`, true},
	{"bare false accepted as top-level value", `false`, true},
	{"bare null accepted as top-level value", `null`, true},
	{"single space around value tolerated", ` 0 `, true},
	{"empty object", `{}`, true},
	{"empty array", `[]`, true},
	{"nested empty containers", `[{},[],{}]`, true},
	{"trailing comma in array rejected", `[1,2,]`, false},
	{"trailing comma in object rejected", `{"a":1,}`, false},
	{"leading comma in array rejected", `[,1]`, false},
	{"missing comma between array elements", `[1 2]`, false},
	{"missing colon in object member", `{"a" 1}`, false},
	{"duplicate colon rejected", `{"a"::1}`, false},
	{"unquoted object key rejected", `{a:1}`, false},
	{"single-quoted string rejected", `{'a':1}`, false},
	{"object key must be string", `{1:1}`, false},
	{"comment not part of grammar", `1 // comment`, false},
	{"block comment not part of grammar", `/* x */ 1`, false},
	{"NaN literal rejected", `NaN`, false},
	{"Infinity literal rejected", `Infinity`, false},
	{"plus-prefixed number rejected", `+1`, false},
	{"leading zero rejected", `01`, false},
	{"leading zero in negative rejected", `-01`, false},
	{"bare minus rejected", `-`, false},
	{"trailing decimal point rejected", `1.`, false},
	{"leading decimal point rejected", `.1`, false},
	{"double decimal point rejected", `1.2.3`, false},
	{"exponent with no digits rejected", `1e`, false},
	{"exponent with double sign rejected", `1e+-1`, false},
	{"exponent with leading zero allowed", `1e01`, true},
	{"hex number rejected", `0x1`, false},
	{"unterminated string rejected", `"abc`, false},
	{"raw control character in string rejected", "\"a\nb\"", false},
	{"raw tab in string rejected", "\"a\tb\"", false},
	{"unescaped backslash at end of string rejected", `"a\`, false},
	{"unknown escape rejected", `"\x41"`, false},
	{"valid two-char escapes accepted", `"\"\\\/\b\f\n\r\t"`, true},
	{"unicode escape accepted", "\"\\u0041\"", true},
	{"unicode escape needs four hex digits", `"\u41"`, false},
	{"unicode escape rejects non-hex digit", `"\u004g"`, false},
	{"surrogate pair accepted", `"\uD83D\uDE00"`, true},
	{"lone high surrogate is valid JSON text (lex only validates syntax)", `"\uD800"`, true},
	{"multiple top-level values rejected", `1 2`, false},
	{"garbage after valid value rejected", `true false`, false},
	{"only whitespace rejected", `   `, false},
	{"unmatched closing brace rejected", `}`, false},
	{"unmatched closing bracket rejected", `]`, false},
	{"mismatched close rejected", `[1}`, false},
	{"mismatched close rejected other way", `{"a":1]`, false},
	{"deeply nested arrays accepted", `[[[[[[[[[[0]]]]]]]]]]`, true},
	{"object with all scalar kinds", `{"a":1,"b":"s","c":true,"d":false,"e":null}`, true},
}

func TestConformance(t *testing.T) {
	for _, c := range conformanceCases {
		t.Run(c.name, func(t *testing.T) {
			p, err := NewParser()
			if err != nil {
				t.Fatal(err)
			}
			err = p.Parse([]byte(c.input))
			accepted := err == nil
			if accepted != c.accept {
				t.Fatalf("input %q: Parse returned err=%v, want accept=%v", c.input, err, c.accept)
			}
		})
	}
}

// TestConformanceReuseIsStable parses every case in sequence through one
// shared Parser to catch state leaking across Reset between a failing and
// a succeeding document.
func TestConformanceReuseIsStable(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range conformanceCases {
		err := p.Parse([]byte(c.input))
		accepted := err == nil
		if accepted != c.accept {
			t.Fatalf("case %d (%s): input %q: err=%v, want accept=%v", i, c.name, c.input, err, c.accept)
		}
	}
}

func TestConformanceWhitespaceVariants(t *testing.T) {
	whitespace := []string{" ", "\t", "\n", "\r", " \t\n\r "}
	for _, ws := range whitespace {
		input := fmt.Sprintf("%s[1,2,3]%s", ws, ws)
		t.Run(fmt.Sprintf("%q", ws), func(t *testing.T) {
			p, err := NewParser()
			if err != nil {
				t.Fatal(err)
			}
			if err := p.Parse([]byte(input)); err != nil {
				t.Fatalf("Parse(%q): %v", input, err)
			}
		})
	}
}
