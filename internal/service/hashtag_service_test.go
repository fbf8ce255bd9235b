package service

import "testing"

func TestNormalizeHashtag(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"原样小写", "golang", "golang"},
		{"去井号", "#Golang", "golang"},
		{"去首尾空白", "  #Mixed  ", "mixed"},
		{"中文标签", "#手写", "手写"},
		{"全空", "  ", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := normalizeHashtag(c.in); got != c.want {
				t.Errorf("normalizeHashtag(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
