package table

import (
	"reflect"
	"testing"
)

func fixtureTable(t *testing.T) Table {
	t.Helper()
	return Normalize(
		[]string{"Item Barcode", "Description", "Category", "cost"},
		[][]string{
			{"A1", "Widget", "Tools", "5"},
			{"B2", "Gadget", "Parts", "9"},
			{"C3", "Spanner", "Tools", "12.5"},
		},
	)
}

func TestCategories(t *testing.T) {
	stock := fixtureTable(t)
	arrivals := Normalize(
		[]string{"Item Barcode", "Description", "Category", "Cost"},
		[][]string{
			{"D4", "Bolt", " Fasteners ", "1"},
			{"E5", "Nut", "", "1"},
			{"F6", "Washer", "Tools", "1"},
		},
	)

	got, warn := Categories(stock, arrivals)
	if warn != nil {
		t.Fatalf("Unexpected warning: %v", warn)
	}

	want := []string{AllCategories, "Fasteners", "Parts", "Tools"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCategories_SingleTableExample(t *testing.T) {
	tbl := Normalize(
		[]string{"barcode", "description", "Category", "cost"},
		[][]string{
			{"A1", "Widget", "Tools", "5"},
			{"B2", "Gadget", "Parts", "9"},
		},
	)

	got, warn := Categories(tbl)
	if warn != nil {
		t.Fatalf("Unexpected warning: %v", warn)
	}
	want := []string{"All Categories", "Parts", "Tools"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCategories_MissingColumnDegrades(t *testing.T) {
	broken := Table{
		Columns: []string{"Item Barcode"},
		Rows:    []Row{{"Item Barcode": "A1"}},
	}

	got, warn := Categories(broken)
	if warn == nil {
		t.Fatal("Expected a schema mismatch warning")
	}
	if !reflect.DeepEqual(got, []string{AllCategories}) {
		t.Errorf("Expected sentinel-only index, got %v", got)
	}
}

func TestCategories_SkipsUnavailableTables(t *testing.T) {
	got, warn := Categories(fixtureTable(t), Empty())
	if warn != nil {
		t.Fatalf("Unexpected warning: %v", warn)
	}
	want := []string{AllCategories, "Parts", "Tools"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFilterByCategory(t *testing.T) {
	tbl := fixtureTable(t)

	tests := []struct {
		name     string
		category string
		want     []string // expected barcodes
	}{
		{"sentinel is identity", AllCategories, []string{"A1", "B2", "C3"}},
		{"exact match", "Tools", []string{"A1", "C3"}},
		{"selection trimmed before compare", "  Parts ", []string{"B2"}},
		{"case sensitive", "tools", []string{}},
		{"no match yields empty view", "Plumbing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByCategory(tbl, tt.category)
			if len(got.Rows) != len(tt.want) {
				t.Fatalf("Expected %d rows, got %d", len(tt.want), len(got.Rows))
			}
			for i, barcode := range tt.want {
				if got.Rows[i].Get("Item Barcode") != barcode {
					t.Errorf("Row %d: expected %s, got %s", i, barcode, got.Rows[i].Get("Item Barcode"))
				}
			}
		})
	}
}

func TestFilterByCategory_SentinelSharesSnapshot(t *testing.T) {
	tbl := fixtureTable(t)
	got := FilterByCategory(tbl, AllCategories)
	if got.SnapshotID != tbl.SnapshotID {
		t.Error("Identity view must share the source snapshot")
	}
	if len(got.Rows) != len(tbl.Rows) {
		t.Errorf("Identity view changed row count: %d != %d", len(got.Rows), len(tbl.Rows))
	}
}

func TestSearch(t *testing.T) {
	tbl := Normalize(
		[]string{"Item Barcode", "Description", "Category", "cost"},
		[][]string{
			{"XABCY", "Widget", "Tools", "5"},
			{"ABD", "Gadget", "Parts", "9"},
			{"Q1", "abc holder", "Parts", "2"},
			{"Q2", "", "Parts", "3"},
		},
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"substring on barcode", "abc", []string{"XABCY", "Q1"}},
		{"case insensitive query", "  ABC ", []string{"XABCY", "Q1"}},
		{"matches description field", "gadget", []string{"ABD"}},
		{"or across fields not and", "widget", []string{"XABCY"}},
		{"no match", "zzz", []string{}},
		{"blank query is identity", "   ", []string{"XABCY", "ABD", "Q1", "Q2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tbl, tt.query)
			if len(got.Rows) != len(tt.want) {
				t.Fatalf("Expected %d rows, got %d", len(tt.want), len(got.Rows))
			}
			for i, barcode := range tt.want {
				if got.Rows[i].Get("Item Barcode") != barcode {
					t.Errorf("Row %d: expected %s, got %s", i, barcode, got.Rows[i].Get("Item Barcode"))
				}
			}
		})
	}
}

func TestSearch_EmptyTable(t *testing.T) {
	got := Search(Empty(), "abc")
	if len(got.Rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(got.Rows))
	}
}

func TestProjectForDisplay(t *testing.T) {
	tbl := fixtureTable(t)

	t.Run("cost hidden", func(t *testing.T) {
		got := ProjectForDisplay(tbl, false)
		if got.HasColumn(CategoryColumn) {
			t.Error("Category column must never reach display")
		}
		if got.HasColumn(CostColumn) || got.HasColumn(CostDisplayLabel) {
			t.Error("Cost must be absent when not revealed")
		}
		for i, row := range got.Rows {
			if _, ok := row[CategoryColumn]; ok {
				t.Errorf("Row %d still carries category", i)
			}
			if _, ok := row[CostColumn]; ok {
				t.Errorf("Row %d still carries cost", i)
			}
		}
	})

	t.Run("cost revealed under display label", func(t *testing.T) {
		got := ProjectForDisplay(tbl, true)
		if got.HasColumn(CategoryColumn) {
			t.Error("Category column must never reach display")
		}
		if got.HasColumn(CostColumn) {
			t.Error("Internal cost name must not leak into display")
		}
		if !got.HasColumn(CostDisplayLabel) {
			t.Fatal("Revealed cost column missing")
		}
		wantCosts := []string{"5", "9", "12.5"}
		for i, want := range wantCosts {
			if got.Rows[i].Get(CostDisplayLabel) != want {
				t.Errorf("Row %d: expected cost %s, got %s", i, want, got.Rows[i].Get(CostDisplayLabel))
			}
		}
	})

	t.Run("absent columns are a no-op", func(t *testing.T) {
		bare := Table{
			Columns: []string{"Item Barcode"},
			Rows:    []Row{{"Item Barcode": "A1"}},
		}
		got := ProjectForDisplay(bare, true)
		if !reflect.DeepEqual(got.Columns, []string{"Item Barcode"}) {
			t.Errorf("Unexpected columns: %v", got.Columns)
		}
	})
}

// End-to-end behavior from the dashboard's two views over one stock table.
func TestBrowseAndSearchViews(t *testing.T) {
	tbl := Normalize(
		[]string{"Item Barcode", "Description", "Category", "cost"},
		[][]string{
			{"A1", "Widget", "Tools", "5"},
			{"B2", "Gadget", "Parts", "9"},
		},
	)

	// Default tabbed browsing: category filter, cost hidden.
	browse := ProjectForDisplay(FilterByCategory(tbl, "Tools"), false)
	if len(browse.Rows) != 1 || browse.Rows[0].Get("Item Barcode") != "A1" {
		t.Fatalf("Expected only A1 in Tools tab, got %v", browse.Rows)
	}
	if browse.HasColumn(CostDisplayLabel) || browse.HasColumn(CategoryColumn) {
		t.Error("Browsing view must hide cost and category")
	}

	// Search result view: cost revealed.
	result := ProjectForDisplay(Search(FilterByCategory(tbl, AllCategories), "gadget"), true)
	if len(result.Rows) != 1 || result.Rows[0].Get("Item Barcode") != "B2" {
		t.Fatalf("Expected only B2 from search, got %v", result.Rows)
	}
	if result.Rows[0].Get(CostDisplayLabel) != "9" {
		t.Errorf("Expected revealed cost 9, got %q", result.Rows[0].Get(CostDisplayLabel))
	}
}
