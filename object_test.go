package jsontape

import "testing"

func TestObjectLenAndForEach(t *testing.T) {
	p := mustParse(t, `{"a":1,"b":2,"c":3}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	if obj.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", obj.Len())
	}
	var names []string
	obj.ForEach(func(name []byte, val Value) bool {
		names = append(names, string(name))
		return true
	})
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestObjectForEachEarlyStop(t *testing.T) {
	p := mustParse(t, `{"a":1,"b":2,"c":3}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	obj.ForEach(func(name []byte, val Value) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("ForEach visited %d members, want 2 (early stop)", count)
	}
}

func TestObjectFindKeyWithEscapedName(t *testing.T) {
	p := mustParse(t, `{"a\tb":1,"plain":2}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	dst := NewBuffer(nil)
	v, ok := obj.FindKey("a\tb", dst)
	if !ok {
		t.Fatal("expected to find escaped key")
	}
	lex, _ := v.NumberLexeme()
	if string(lex) != "1" {
		t.Fatalf("value lexeme = %q, want 1", lex)
	}
}

func TestObjectFindKeyMissing(t *testing.T) {
	p := mustParse(t, `{"a":1}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := obj.FindKey("nope", NewBuffer(nil)); ok {
		t.Fatal("expected key to be absent")
	}
}

func TestObjectMapNestedDecoding(t *testing.T) {
	p := mustParse(t, `{"x":{"y":[1,2,{"z":true}]}}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	m, err := obj.Map(nil, NewBuffer(nil))
	if err != nil {
		t.Fatal(err)
	}
	x, ok := m["x"].(map[string]interface{})
	if !ok {
		t.Fatalf("x = %T", m["x"])
	}
	y, ok := x["y"].([]interface{})
	if !ok || len(y) != 3 {
		t.Fatalf("y = %v", x["y"])
	}
	z, ok := y[2].(map[string]interface{})
	if !ok || z["z"] != true {
		t.Fatalf("y[2] = %v", y[2])
	}
}

func TestObjectEmpty(t *testing.T) {
	p := mustParse(t, `{}`)
	obj, err := p.Root().Object()
	if err != nil {
		t.Fatal(err)
	}
	if obj.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", obj.Len())
	}
	visited := false
	obj.ForEach(func(name []byte, val Value) bool {
		visited = true
		return true
	})
	if visited {
		t.Fatal("expected no members visited on empty object")
	}
}
