package environment

import "testing"

func TestString(t *testing.T) {
	t.Setenv("HEARTH_TEST_STR", "value")
	if v, ok := String("HEARTH_TEST_STR"); !ok || v != "value" {
		t.Errorf("String() = (%q, %v)", v, ok)
	}
	if _, ok := String("HEARTH_TEST_UNSET"); ok {
		t.Error("String() reported an unset variable as set")
	}

	t.Setenv("HEARTH_TEST_EMPTY", "")
	if v, ok := String("HEARTH_TEST_EMPTY"); !ok || v != "" {
		t.Errorf("String() = (%q, %v), want set-but-empty", v, ok)
	}
}

func TestStringOr(t *testing.T) {
	t.Setenv("HEARTH_TEST_STR", "value")
	if got := StringOr("HEARTH_TEST_STR", "default"); got != "value" {
		t.Errorf("StringOr() = %q", got)
	}
	if got := StringOr("HEARTH_TEST_UNSET", "default"); got != "default" {
		t.Errorf("StringOr() = %q, want default", got)
	}
}

func TestRequiredString(t *testing.T) {
	t.Setenv("HEARTH_TEST_STR", "value")
	if v, err := RequiredString("HEARTH_TEST_STR"); err != nil || v != "value" {
		t.Errorf("RequiredString() = (%q, %v)", v, err)
	}
	if _, err := RequiredString("HEARTH_TEST_UNSET"); err == nil {
		t.Error("RequiredString() accepted an unset variable")
	}
}

func TestIntOr(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"42", 42},
		{"-3", -3},
		{"not a number", 7},
	}
	for _, tt := range tests {
		t.Setenv("HEARTH_TEST_INT", tt.value)
		if got := IntOr("HEARTH_TEST_INT", 7); got != tt.want {
			t.Errorf("IntOr() with %q = %d, want %d", tt.value, got, tt.want)
		}
	}

	if got := IntOr("HEARTH_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("IntOr() for unset variable = %d, want default", got)
	}
}

func TestStringSliceOr(t *testing.T) {
	t.Setenv("HEARTH_TEST_SLICE", "a, b ,c,,  ")
	got := StringSliceOr("HEARTH_TEST_SLICE", nil)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("StringSliceOr() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}

	fallback := []string{"x"}
	if got := StringSliceOr("HEARTH_TEST_UNSET", fallback); len(got) != 1 || got[0] != "x" {
		t.Errorf("StringSliceOr() = %v, want fallback", got)
	}

	t.Setenv("HEARTH_TEST_BLANK", " , ,")
	if got := StringSliceOr("HEARTH_TEST_BLANK", fallback); len(got) != 1 || got[0] != "x" {
		t.Errorf("StringSliceOr() with blanks = %v, want fallback", got)
	}
}
