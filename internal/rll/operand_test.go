package rll

import (
	"reflect"
	"testing"
)

func TestParseOperandTags(t *testing.T) {
	cases := []struct {
		in   string
		tags []string
	}{
		{"Motor", []string{"Motor"}},
		{"Timer1.DN", []string{"Timer1"}},
		{"Local:1:I.Data.0", []string{"Local"}},
		{"FlexIO:3:I.Pt01.Data", []string{"FlexIO"}},
		{"Array[0]", []string{"Array"}},
		{"Array[idx]", []string{"Array", "idx"}},
		{"MultiDimArray[1,3].Member", []string{"MultiDimArray"}},
		{"SimpleDint.[TestTag.IntMember]", []string{"SimpleDint", "TestTag"}},
		{"A_URNG", []string{"A_URNG"}},
	}
	for _, c := range cases {
		got := ParseOperand(c.in).AllTags()
		if !reflect.DeepEqual(got, c.tags) {
			t.Errorf("ParseOperand(%q).AllTags() = %v, want %v", c.in, got, c.tags)
		}
	}
}

func TestParseOperandLiterals(t *testing.T) {
	for _, in := range []string{"123.456", "16#FF00", "-2147483648", "-2.0", "1.5e3", "2#1010"} {
		val := ParseOperand(in)
		if _, ok := val.(*Literal); !ok {
			t.Errorf("ParseOperand(%q) = %T, want literal", in, val)
		}
		if tags := val.AllTags(); len(tags) != 0 {
			t.Errorf("literal %q yielded tags %v", in, tags)
		}
	}
}

func TestParseOperandStructuredShape(t *testing.T) {
	val := ParseOperand("Timer1.DN")
	path, ok := val.(*TagPath)
	if !ok {
		t.Fatalf("ParseOperand = %T, want tag path", val)
	}
	if path.Base != "Timer1" || path.FullPath != "Timer1.DN" {
		t.Errorf("path = %+v", path)
	}
}

func TestParseOperandExpression(t *testing.T) {
	tags := ParseOperand("((1.0 - x) * y) + z").AllTags()
	if !reflect.DeepEqual(tags, []string{"x", "y", "z"}) {
		t.Errorf("tags = %v, want [x y z]", tags)
	}
}

func TestParseOperandExpressionStructured(t *testing.T) {
	tags := ParseOperand("Timer1.ACC / Timer1.PRE * 100").AllTags()
	if !reflect.DeepEqual(tags, []string{"Timer1", "Timer1"}) {
		t.Errorf("tags = %v, want [Timer1 Timer1]", tags)
	}
}

func TestParseOperandComplexExpression(t *testing.T) {
	tags := ParseOperand("((SP_In[10]-SP_In[9])*SRun_Tmr[10].ACC/SRun_Tmr[10].PRE)+SP_In[9]").AllTags()
	sawSP, sawTmr := false, false
	for _, tag := range tags {
		switch tag {
		case "SP_In":
			sawSP = true
		case "SRun_Tmr":
			sawTmr = true
		}
	}
	if !sawSP || !sawTmr {
		t.Errorf("tags = %v, want SP_In and SRun_Tmr", tags)
	}
}

func TestParseOperandNegativeInExpression(t *testing.T) {
	tags := ParseOperand("x * -2.0").AllTags()
	if !reflect.DeepEqual(tags, []string{"x"}) {
		t.Errorf("tags = %v, want [x]", tags)
	}
}

func TestParseOperandKnownFunctions(t *testing.T) {
	tags := ParseOperand("ATN(_Test) > 1.0").AllTags()
	if !reflect.DeepEqual(tags, []string{"_Test"}) {
		t.Errorf("ATN tags = %v, want [_Test]", tags)
	}

	tags = ParseOperand("SIN(Angle) + COS(Angle)").AllTags()
	if !reflect.DeepEqual(tags, []string{"Angle", "Angle"}) {
		t.Errorf("SIN/COS tags = %v, want [Angle Angle]", tags)
	}
}
