package employee

import "testing"

func TestNextCode(t *testing.T) {
	cases := []struct {
		last string
		want string
	}{
		{"", "EMP-001"},
		{"EMP-001", "EMP-002"},
		{"EMP-017", "EMP-018"},
		{"EMP-099", "EMP-100"},
		{"EMP-999", "EMP-1000"},
		{"EMP-1000", "EMP-1001"},
		{"garbage", "EMP-001"},
		{"EMP-abc", "EMP-001"},
	}

	for _, tc := range cases {
		if got := NextCode(tc.last); got != tc.want {
			t.Errorf("NextCode(%q) = %q, want %q", tc.last, got, tc.want)
		}
	}
}
