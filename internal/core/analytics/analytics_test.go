package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{StudentID: "STU001", Category: "Bookstore", Item: "Physics Textbook", Quantity: 1, PricePerUnit: 200, TotalAmount: 200, TransactionDate: "2024-01-15 10:30:00"},
		{StudentID: "STU002", Category: "Canteen", Item: "Veg Thali", Quantity: 2, PricePerUnit: 75, TotalAmount: 150, TransactionDate: "2024-01-15 13:05:00"},
		{StudentID: "STU001", Category: "Canteen", Item: "Coffee", Quantity: 2, PricePerUnit: 25, TotalAmount: 50, TransactionDate: "2024-01-16 09:00:00"},
	}
}

func TestSummarize_ExampleScenario(t *testing.T) {
	txs := sampleTransactions()

	s := Summarize(txs)

	assert.Equal(t, 3, s.TotalTransactions)
	assert.Equal(t, 400.0, s.TotalAmount)
	assert.InDelta(t, 133.33, s.AverageAmount, 0.01)
	assert.Equal(t, 2, s.UniqueStudents)
	assert.Len(t, s.Recent, 3)

	totals := map[string]float64{}
	for _, c := range CategoryTotals(txs) {
		totals[c.Category] = c.Amount
	}
	assert.Equal(t, 200.0, totals["Canteen"])
	assert.Equal(t, 200.0, totals["Bookstore"])
	assert.Equal(t, 0.0, totals["Xerox"])
}

func TestSummarize_EmptyDatasetAverageIsNaN(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalTransactions)
	assert.True(t, math.IsNaN(s.AverageAmount))

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	avg, ok := decoded["average_amount"]
	assert.True(t, ok, "average_amount should be present")
	assert.Nil(t, avg)
	assert.Equal(t, []any{}, decoded["recent"])
}

func TestSummary_MarshalJSONAverage(t *testing.T) {
	raw, err := json.Marshal(Summarize(sampleTransactions()))
	require.NoError(t, err)

	var decoded struct {
		TotalAmount   float64  `json:"total_amount"`
		AverageAmount *float64 `json:"average_amount"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.AverageAmount)
	assert.InDelta(t, 133.33, *decoded.AverageAmount, 0.01)
	assert.Equal(t, 400.0, decoded.TotalAmount)
}

func TestSummarize_RecentIsFirstFive(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 8; i++ {
		txs = append(txs, domain.Transaction{StudentID: "S", Item: string(rune('a' + i)), TotalAmount: 1})
	}

	s := Summarize(txs)

	require.Len(t, s.Recent, 5)
	assert.Equal(t, "a", s.Recent[0].Item)
	assert.Equal(t, "e", s.Recent[4].Item)
}

func TestCategorySplitSumsToTotal(t *testing.T) {
	txs := append(sampleTransactions(),
		domain.Transaction{StudentID: "STU003", Category: "Xerox", Item: "Copies", TotalAmount: 12.5, TransactionDate: "2024-01-17 11:00:00"},
		domain.Transaction{StudentID: "STU003", Category: "Stationery", Item: "Pens", TotalAmount: 40, TransactionDate: "2024-01-17 11:10:00"},
	)
	total := Total(txs)

	for _, c := range UniqueCategories(txs) {
		in := Filter(txs, Query{Category: c})
		var out []domain.Transaction
		for _, tx := range txs {
			if tx.Category != c {
				out = append(out, tx)
			}
		}
		assert.InDelta(t, total, Total(in)+Total(out), 1e-9, "category %s", c)
	}
}

func TestFilter(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{name: "no_filters", query: Query{}, expected: []string{"Physics Textbook", "Veg Thali", "Coffee"}},
		{name: "all_passthrough", query: Query{Category: "all", StudentID: "all"}, expected: []string{"Physics Textbook", "Veg Thali", "Coffee"}},
		{name: "search_item_case_insensitive", query: Query{Search: "COFFEE"}, expected: []string{"Coffee"}},
		{name: "search_matches_category", query: Query{Search: "book"}, expected: []string{"Physics Textbook"}},
		{name: "search_matches_student", query: Query{Search: "stu002"}, expected: []string{"Veg Thali"}},
		{name: "category_exact", query: Query{Category: "Canteen"}, expected: []string{"Veg Thali", "Coffee"}},
		{name: "category_is_case_sensitive", query: Query{Category: "canteen"}, expected: nil},
		{name: "student_exact", query: Query{StudentID: "STU001"}, expected: []string{"Physics Textbook", "Coffee"}},
		{name: "filters_combine", query: Query{Category: "Canteen", StudentID: "STU001"}, expected: []string{"Coffee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []string
			for _, tx := range Filter(txs, tt.query) {
				items = append(items, tx.Item)
			}
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestSort(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name     string
		field    SortField
		dir      SortDirection
		expected []string
	}{
		{name: "date_desc", field: SortByDate, dir: Desc, expected: []string{"Coffee", "Veg Thali", "Physics Textbook"}},
		{name: "date_asc", field: SortByDate, dir: Asc, expected: []string{"Physics Textbook", "Veg Thali", "Coffee"}},
		{name: "amount_asc", field: SortByAmount, dir: Asc, expected: []string{"Coffee", "Veg Thali", "Physics Textbook"}},
		{name: "amount_desc", field: SortByAmount, dir: Desc, expected: []string{"Physics Textbook", "Veg Thali", "Coffee"}},
		{name: "category_asc_keeps_input_order_for_ties", field: SortByCategory, dir: Asc, expected: []string{"Physics Textbook", "Veg Thali", "Coffee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []string
			for _, tx := range Sort(txs, tt.field, tt.dir) {
				items = append(items, tx.Item)
			}
			assert.Equal(t, tt.expected, items)
		})
	}

	assert.Equal(t, "Physics Textbook", txs[0].Item, "input slice must not be reordered")
}

func TestSort_DatesCompareAsStrings(t *testing.T) {
	txs := []domain.Transaction{
		{Item: "late", TransactionDate: "9/1/2024"},
		{Item: "early", TransactionDate: "10/1/2024"},
	}

	sorted := Sort(txs, SortByDate, Asc)

	assert.Equal(t, "early", sorted[0].Item)
}

func TestQuery_Normalize(t *testing.T) {
	q, ok := Query{}.Normalize()
	assert.True(t, ok)
	assert.Equal(t, SortByDate, q.SortField)
	assert.Equal(t, Desc, q.Direction)

	_, ok = Query{SortField: "Item"}.Normalize()
	assert.False(t, ok)

	_, ok = Query{Direction: "up"}.Normalize()
	assert.False(t, ok)
}

func TestStudentTotals(t *testing.T) {
	totals := StudentTotals(sampleTransactions())

	require.Len(t, totals, 2)
	assert.Equal(t, StudentTotal{StudentID: "STU001", TotalSpent: 250, TransactionCount: 2}, totals[0])
	assert.Equal(t, StudentTotal{StudentID: "STU002", TotalSpent: 150, TransactionCount: 1}, totals[1])
}

func TestDailyTotals(t *testing.T) {
	daily := DailyTotals(sampleTransactions())

	assert.Equal(t, []DailyTotal{
		{Date: "2024-01-15", Amount: 350},
		{Date: "2024-01-16", Amount: 50},
	}, daily)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2024-01-15", DayKey("2024-01-15 10:30:00"))
	assert.Equal(t, "2024-01-15", DayKey("2024-01-15"))
	assert.Equal(t, "", DayKey(" 10:30"))
}

func TestCategoryTotals_UnknownCategoriesFollowKnownOnes(t *testing.T) {
	txs := []domain.Transaction{
		{Category: "Fare", TotalAmount: 30},
		{Category: "Canteen", TotalAmount: 10},
		{Category: "Arcade", TotalAmount: 5},
	}

	totals := CategoryTotals(txs)

	var names []string
	for _, c := range totals {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"Bookstore", "Stationery", "Canteen", "Xerox", "Arcade", "Fare"}, names)
}
