package repository

import "testing"

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListParams
		page     int
		pageSize int
	}{
		{"zero", ListParams{}, 1, 10},
		{"negative", ListParams{Page: -3, PageSize: -1}, 1, 10},
		{"explicit", ListParams{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, info := tt.in.Normalize()
			if params.Page != tt.page || params.PageSize != tt.pageSize {
				t.Fatalf("normalized to page=%d pageSize=%d", params.Page, params.PageSize)
			}
			if info.Page != tt.page || info.PageSize != tt.pageSize {
				t.Fatalf("pageInfo mismatch: %+v", info)
			}
		})
	}
}

func TestListQueryBuild(t *testing.T) {
	params, _ := ListParams{Page: 3, PageSize: 20, Query: "work"}.Normalize()

	query, args := newListQuery("categories").search(params.Query).build(params)

	want := "SELECT * FROM categories WHERE category_name ILIKE $1 ORDER BY 1 LIMIT $2 OFFSET $3"
	if query != want {
		t.Fatalf("query mismatch:\n got  %q\n want %q", query, want)
	}
	if len(args) != 3 || args[0] != "%work%" || args[1] != 20 || args[2] != 40 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestListQueryIgnoresUnknownTable(t *testing.T) {
	params, _ := ListParams{Query: "x"}.Normalize()

	// A table outside the whitelist cannot grow a filter condition.
	query, args := newListQuery("users").search(params.Query).build(params)

	want := "SELECT * FROM users ORDER BY 1 LIMIT $1 OFFSET $2"
	if query != want {
		t.Fatalf("query mismatch:\n got  %q\n want %q", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}
