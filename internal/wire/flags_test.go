package wire

import (
	"reflect"
	"testing"
)

func TestEncodeCustomFlags(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]interface{}
		want map[string][]string
	}{
		{
			name: "mixed shapes",
			in: map[string]interface{}{
				"a": 5,
				"b": []interface{}{1, "x", true},
				"c": map[string]interface{}{},
				"d": []interface{}{},
			},
			want: map[string][]string{"a": {"5"}, "b": {"1", "x", "true"}},
		},
		{
			name: "unsupported elements filtered",
			in: map[string]interface{}{
				"keep": []interface{}{"ok", nil, map[string]interface{}{"x": 1}, 2.5},
				"gone": []interface{}{nil, []interface{}{"nested"}},
			},
			want: map[string][]string{"keep": {"ok", "2.5"}},
		},
		{
			name: "typed slices",
			in: map[string]interface{}{
				"s": []string{"a", "b"},
				"f": []float64{1, 0.5},
				"b": []bool{false},
			},
			want: map[string][]string{"s": {"a", "b"}, "f": {"1", "0.5"}, "b": {"false"}},
		},
		{
			name: "scalars",
			in: map[string]interface{}{
				"str":   "hello",
				"empty": "",
				"bool":  false,
				"float": 3.0,
				"nil":   nil,
			},
			want: map[string][]string{"str": {"hello"}, "empty": {""}, "bool": {"false"}, "float": {"3"}},
		},
		{
			name: "empty input",
			in:   map[string]interface{}{},
			want: map[string][]string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeCustomFlags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("EncodeCustomFlags() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyFlag(t *testing.T) {
	cases := []struct {
		in   interface{}
		want flagKind
	}{
		{in: "s", want: flagScalar},
		{in: 1, want: flagScalar},
		{in: true, want: flagScalar},
		{in: []interface{}{1}, want: flagSequence},
		{in: [2]int{1, 2}, want: flagSequence},
		{in: nil, want: flagOther},
		{in: map[string]interface{}{}, want: flagOther},
		{in: struct{}{}, want: flagOther},
	}
	for _, tc := range cases {
		if got := classifyFlag(tc.in); got != tc.want {
			t.Errorf("classifyFlag(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
