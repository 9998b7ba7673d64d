package jsontape

import "testing"

func TestArrayLenAndAt(t *testing.T) {
	p := mustParse(t, `[10,20,30]`)
	arr, err := p.Root().Array()
	if err != nil {
		t.Fatal(err)
	}
	if arr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", arr.Len())
	}
	for i, want := range []string{"10", "20", "30"} {
		v, ok := arr.At(i)
		if !ok {
			t.Fatalf("At(%d) missing", i)
		}
		lex, _ := v.NumberLexeme()
		if string(lex) != want {
			t.Fatalf("At(%d) = %q, want %q", i, lex, want)
		}
	}
	if _, ok := arr.At(3); ok {
		t.Fatal("expected At(3) out of range")
	}
	if _, ok := arr.At(-1); ok {
		t.Fatal("expected At(-1) out of range")
	}
}

func TestArrayAtWithNestedContainers(t *testing.T) {
	p := mustParse(t, `[{"a":1},[2,3],"x"]`)
	arr, err := p.Root().Array()
	if err != nil {
		t.Fatal(err)
	}
	first, ok := arr.At(0)
	if !ok || first.Kind() != KindObject {
		t.Fatalf("element 0 kind = %v", first.Kind())
	}
	second, ok := arr.At(1)
	if !ok || second.Kind() != KindArray {
		t.Fatalf("element 1 kind = %v", second.Kind())
	}
	inner, err := second.Array()
	if err != nil {
		t.Fatal(err)
	}
	if inner.Len() != 2 {
		t.Fatalf("inner array len = %d, want 2", inner.Len())
	}
	third, ok := arr.At(2)
	if !ok {
		t.Fatal("element 2 missing")
	}
	s, ok := third.String(NewBuffer(nil))
	if !ok || s != "x" {
		t.Fatalf("element 2 = %q, ok=%v", s, ok)
	}
}

func TestArrayForEachEarlyStop(t *testing.T) {
	p := mustParse(t, `[1,2,3,4]`)
	arr, err := p.Root().Array()
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	arr.ForEach(func(val Value) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("ForEach visited %d elements, want 2 (early stop)", count)
	}
}

func TestArrayInterfaceDecoding(t *testing.T) {
	p := mustParse(t, `[1,"two",false,null,[3]]`)
	arr, err := p.Root().Array()
	if err != nil {
		t.Fatal(err)
	}
	v, err := arr.Interface(NewBuffer(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 5 {
		t.Fatalf("len = %d, want 5", len(v))
	}
	if v[0].(float64) != 1 {
		t.Fatalf("v[0] = %v", v[0])
	}
	if v[1].(string) != "two" {
		t.Fatalf("v[1] = %v", v[1])
	}
	if v[2].(bool) != false {
		t.Fatalf("v[2] = %v", v[2])
	}
	if v[3] != nil {
		t.Fatalf("v[3] = %v, want nil", v[3])
	}
	nested, ok := v[4].([]interface{})
	if !ok || len(nested) != 1 {
		t.Fatalf("v[4] = %v", v[4])
	}
}

func TestArrayEmpty(t *testing.T) {
	p := mustParse(t, `[]`)
	arr, err := p.Root().Array()
	if err != nil {
		t.Fatal(err)
	}
	if arr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", arr.Len())
	}
	if _, ok := arr.At(0); ok {
		t.Fatal("expected At(0) out of range on empty array")
	}
}
