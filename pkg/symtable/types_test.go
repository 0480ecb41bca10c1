package symtable

import "testing"

func TestBaseTypeStrings(t *testing.T) {
	tests := []struct {
		tag  BaseType
		want string
	}{
		{Tvoid{}, "void"},
		{Tbool{}, "_Bool"},
		{Tlong{}, "long"},
		{Tpointer{}, "pointer"},
		{TvoidPointer{}, "void *"},
		{Tarray{Len: 3}, "array[3]"},
		{Tarray{Len: -1}, "array[]"},
		{TsizeT{}, "size_t"},
		{Tidentifier{Name: "x"}, "x"},
		{TvaList{}, "..."},
	}
	for _, tc := range tests {
		if got := tc.tag.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestNewAndPrimary(t *testing.T) {
	te := New(Long())
	if te.Primary() != Long() {
		t.Errorf("expected long primary, got %v", te.Primary())
	}
	if te.IsEmpty() {
		t.Error("expected non-empty expression")
	}

	var empty TypeExpression
	if !empty.IsEmpty() {
		t.Error("expected zero value to be empty")
	}
	if empty.Primary() != nil {
		t.Errorf("expected nil primary, got %v", empty.Primary())
	}
}

func TestStringFlat(t *testing.T) {
	te := TypeExpression{Val: []BaseType{Unsigned(), Long()}}
	if got := te.String(); got != "unsigned long" {
		t.Errorf("expected %q, got %q", "unsigned long", got)
	}
}

func TestStringWithChildren(t *testing.T) {
	te := TypeExpression{
		Val:   []BaseType{Pointer()},
		Child: []TypeExpression{New(Int())},
	}
	if got := te.String(); got != "pointer(int)" {
		t.Errorf("expected %q, got %q", "pointer(int)", got)
	}

	te = TypeExpression{
		Val:   []BaseType{Array(2), Char()},
		Child: nil,
	}
	if got := te.String(); got != "array[2] char" {
		t.Errorf("expected %q, got %q", "array[2] char", got)
	}
}
