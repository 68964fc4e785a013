package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url       string
		wantPage  int
		wantLimit int
	}{
		{"/?page=2&limit=25", 2, 25},
		{"/", 1, 10},
		{"/?page=0&limit=-5", 1, 10},
		{"/?page=abc&limit=xyz", 1, 10},
		{"/?limit=500", 1, 100},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.url, nil)
		p := ParsePagination(r, 10, 100)
		if p.Page != tc.wantPage || p.Limit != tc.wantLimit {
			t.Errorf("ParsePagination(%q) = {%d %d}, want {%d %d}", tc.url, p.Page, p.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestOffset(t *testing.T) {
	p := Pagination{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 20, 5},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.limit); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
