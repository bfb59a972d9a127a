package grammar

import (
	"errors"
	"reflect"
	"testing"

	"astgen/internal/names"
)

func TestHoistNestedChoiceUnderRepeat(t *testing.T) {
	gen := names.NewGen()
	choice := Choice{Members: []Body{Symbol{Name: "a"}, Symbol{Name: "b"}}}

	body, subs, err := Hoist("list_rule", Repeat{Content: choice}, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Repeat{Content: Symbol{Name: "list_rule_0"}}
	if !reflect.DeepEqual(body, Body(want)) {
		t.Fatalf("hoisted body = %s, want %s", body, want)
	}
	if len(subs) != 1 || subs[0].Name != "list_rule_0" {
		t.Fatalf("pending = %v, want one entry named list_rule_0", subs)
	}
	if !reflect.DeepEqual(subs[0].Body, Body(choice)) {
		t.Fatalf("extracted body = %s, want %s", subs[0].Body, choice)
	}
}

func TestHoistTopLevelChoiceExaminesMembersOnly(t *testing.T) {
	gen := names.NewGen()
	inner := Choice{Members: []Body{Symbol{Name: "x"}, Symbol{Name: "y"}}}
	top := Choice{Members: []Body{Symbol{Name: "num"}, inner}}

	body, subs, err := Hoist("expr", top, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Choice{Members: []Body{Symbol{Name: "num"}, Symbol{Name: "expr_0"}}}
	if !reflect.DeepEqual(body, Body(want)) {
		t.Fatalf("hoisted body = %s, want %s", body, want)
	}
	if len(subs) != 1 || subs[0].Name != "expr_0" {
		t.Fatalf("pending = %v, want the nested choice only", subs)
	}
}

func TestHoistSeqWithTwoChoices(t *testing.T) {
	gen := names.NewGen()
	c1 := Choice{Members: []Body{Symbol{Name: "a"}}}
	c2 := Choice{Members: []Body{Symbol{Name: "b"}}}
	seq := Seq{Members: []Body{c1, String{Value: ","}, c2}}

	body, subs, err := Hoist("pair", seq, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Seq{Members: []Body{Symbol{Name: "pair_0"}, String{Value: ","}, Symbol{Name: "pair_1"}}}
	if !reflect.DeepEqual(body, Body(want)) {
		t.Fatalf("hoisted body = %s, want %s", body, want)
	}
	if len(subs) != 2 || subs[0].Name != "pair_0" || subs[1].Name != "pair_1" {
		t.Fatalf("pending = %v, want pair_0 then pair_1", subs)
	}
}

func TestHoistErasesPrecedenceWrapper(t *testing.T) {
	gen := names.NewGen()
	body, subs, err := Hoist("expr", PrecLeft{Content: Seq{Members: []Body{
		Symbol{Name: "expr"},
		Choice{Members: []Body{String{Value: "+"}, String{Value: "-"}}},
	}}}, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := body.(Seq)
	if !ok {
		t.Fatalf("prec wrapper should be erased, got %s", body)
	}
	if !reflect.DeepEqual(seq.Members[1], Body(Symbol{Name: "expr_0"})) {
		t.Fatalf("nested choice not hoisted: %s", seq)
	}
	if len(subs) != 1 {
		t.Fatalf("pending = %v, want one entry", subs)
	}
}

func TestHoistReachesDeeplyNestedChoice(t *testing.T) {
	gen := names.NewGen()
	// the choice sits two composites down; it must still be extracted
	body, subs, err := Hoist("r", Seq{Members: []Body{
		Seq{Members: []Body{
			Choice{Members: []Body{Symbol{Name: "a"}}},
			String{Value: "x"},
		}},
		String{Value: "y"},
	}}, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Seq{Members: []Body{
		Seq{Members: []Body{Symbol{Name: "r_0"}, String{Value: "x"}}},
		String{Value: "y"},
	}}
	if !reflect.DeepEqual(body, Body(want)) {
		t.Fatalf("hoisted body = %s, want %s", body, want)
	}
	if len(subs) != 1 || subs[0].Name != "r_0" {
		t.Fatalf("pending = %v, want r_0", subs)
	}
}

func TestHoistSeesThroughPrecWrappedChoice(t *testing.T) {
	gen := names.NewGen()
	body, subs, err := Hoist("r", Seq{Members: []Body{
		PrecRight{Content: Choice{Members: []Body{Symbol{Name: "a"}, Symbol{Name: "b"}}}},
	}}, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Seq{Members: []Body{Symbol{Name: "r_0"}}}
	if !reflect.DeepEqual(body, Body(want)) {
		t.Fatalf("hoisted body = %s, want %s", body, want)
	}
	if len(subs) != 1 {
		t.Fatalf("pending = %v, want one entry", subs)
	}
	// the extracted body is the bare choice, precedence erased
	if _, ok := subs[0].Body.(Choice); !ok {
		t.Fatalf("extracted body = %s, want a bare choice", subs[0].Body)
	}
}

func TestHoistLeafUnchanged(t *testing.T) {
	gen := names.NewGen()
	body, subs, err := Hoist("r", Pattern{Value: "[0-9]+"}, IsChoice, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(body, Body(Pattern{Value: "[0-9]+"})) {
		t.Fatalf("leaf changed: %s", body)
	}
	if len(subs) != 0 {
		t.Fatalf("pending = %v, want none", subs)
	}
}

func TestHoistReportsNameCollision(t *testing.T) {
	gen := names.NewGen()
	gen.Reserve("expr_0")

	_, _, err := Hoist("expr", Seq{Members: []Body{
		Choice{Members: []Body{Symbol{Name: "a"}}},
	}}, IsChoice, gen)
	if !errors.Is(err, names.ErrCollision) {
		t.Fatalf("err = %v, want names.ErrCollision", err)
	}
}
