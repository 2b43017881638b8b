// Package analytics computes the admin, parent and vendor dashboard views
// over a transaction dataset. Every function walks the full slice it is
// given; nothing is cached or computed incrementally.
package analytics

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

type SortField string

const (
	SortByDate     SortField = "TransactionDate"
	SortByCategory SortField = "Category"
	SortByAmount   SortField = "TotalAmount"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

const (
	FilterAll   = "all"
	recentLimit = 5
)

// Query describes the transactions table: search box, the two dropdown
// filters and the active sort column.
type Query struct {
	Search    string
	Category  string
	StudentID string
	SortField SortField
	Direction SortDirection
}

// Normalize fills defaults and rejects unknown sort settings.
func (q Query) Normalize() (Query, bool) {
	if q.SortField == "" {
		q.SortField = SortByDate
	}
	if q.Direction == "" {
		q.Direction = Desc
	}
	switch q.SortField {
	case SortByDate, SortByCategory, SortByAmount:
	default:
		return q, false
	}
	if q.Direction != Asc && q.Direction != Desc {
		return q, false
	}
	return q, true
}

func MatchesSearch(t domain.Transaction, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Item), term) ||
		strings.Contains(strings.ToLower(t.Category), term) ||
		strings.Contains(strings.ToLower(t.StudentID), term)
}

func matchesOption(value, option string) bool {
	return option == "" || option == FilterAll || value == option
}

// Filter applies search, category and student filters together.
func Filter(txs []domain.Transaction, q Query) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if MatchesSearch(t, q.Search) &&
			matchesOption(t.Category, q.Category) &&
			matchesOption(t.StudentID, q.StudentID) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a sorted copy. Dates are compared as strings. Equal keys keep
// their input order.
func Sort(txs []domain.Transaction, field SortField, dir SortDirection) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)

	less := func(a, b domain.Transaction) bool {
		switch field {
		case SortByCategory:
			return a.Category < b.Category
		case SortByAmount:
			return a.TotalAmount < b.TotalAmount
		default:
			return a.TransactionDate < b.TransactionDate
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// Apply runs Filter then Sort.
func Apply(txs []domain.Transaction, q Query) []domain.Transaction {
	return Sort(Filter(txs, q), q.SortField, q.Direction)
}

type Summary struct {
	TotalTransactions int                  `json:"total_transactions"`
	TotalAmount       float64              `json:"total_amount"`
	AverageAmount     float64              `json:"-"`
	UniqueStudents    int                  `json:"unique_students"`
	Recent            []domain.Transaction `json:"recent"`
}

// MarshalJSON renders a NaN average as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	var avg *float64
	if !math.IsNaN(s.AverageAmount) {
		avg = &s.AverageAmount
	}
	return json.Marshal(struct {
		plain
		AverageAmount *float64 `json:"average_amount"`
	}{plain(s), avg})
}

// Summarize computes the overview cards. AverageAmount is NaN for an empty
// dataset.
func Summarize(txs []domain.Transaction) Summary {
	total := Total(txs)
	n := min(len(txs), recentLimit)
	recent := make([]domain.Transaction, n)
	copy(recent, txs[:n])
	return Summary{
		TotalTransactions: len(txs),
		TotalAmount:       total,
		AverageAmount:     Average(txs),
		UniqueStudents:    len(UniqueStudents(txs)),
		Recent:            recent,
	}
}

func Total(txs []domain.Transaction) float64 {
	var sum float64
	for _, t := range txs {
		sum += t.TotalAmount
	}
	return sum
}

// Average returns NaN when txs is empty.
func Average(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return math.NaN()
	}
	return Total(txs) / float64(len(txs))
}

// UniqueStudents lists student ids in first-seen order.
func UniqueStudents(txs []domain.Transaction) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, t := range txs {
		if _, ok := seen[t.StudentID]; ok {
			continue
		}
		seen[t.StudentID] = struct{}{}
		ids = append(ids, t.StudentID)
	}
	return ids
}

// UniqueCategories lists category names in first-seen order.
func UniqueCategories(txs []domain.Transaction) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, t := range txs {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		names = append(names, t.Category)
	}
	return names
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryTotals reports the known vendor categories first, zero when
// absent, then any other category found in the data sorted by name.
func CategoryTotals(txs []domain.Transaction) []CategoryTotal {
	sums := make(map[string]float64)
	for _, t := range txs {
		sums[t.Category] += t.TotalAmount
	}

	out := make([]CategoryTotal, 0, len(sums)+len(domain.Categories))
	known := make(map[string]struct{}, len(domain.Categories))
	for _, c := range domain.Categories {
		known[string(c)] = struct{}{}
		out = append(out, CategoryTotal{Category: string(c), Amount: sums[string(c)]})
	}

	var extra []string
	for name := range sums {
		if _, ok := known[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, CategoryTotal{Category: name, Amount: sums[name]})
	}
	return out
}

type StudentTotal struct {
	StudentID        string  `json:"student_id"`
	TotalSpent       float64 `json:"total_spent"`
	TransactionCount int     `json:"transaction_count"`
}

func StudentTotals(txs []domain.Transaction) []StudentTotal {
	index := make(map[string]int)
	out := []StudentTotal{}
	for _, t := range txs {
		i, ok := index[t.StudentID]
		if !ok {
			i = len(out)
			index[t.StudentID] = i
			out = append(out, StudentTotal{StudentID: t.StudentID})
		}
		out[i].TotalSpent += t.TotalAmount
		out[i].TransactionCount++
	}
	return out
}

type DailyTotal struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// DayKey is the date part of a "YYYY-MM-DD HH:MM:SS" timestamp: everything
// before the first space.
func DayKey(timestamp string) string {
	day, _, _ := strings.Cut(timestamp, " ")
	return day
}

// DailyTotals groups on DayKey with keys in ascending string order.
func DailyTotals(txs []domain.Transaction) []DailyTotal {
	sums := make(map[string]float64)
	for _, t := range txs {
		sums[DayKey(t.TransactionDate)] += t.TotalAmount
	}
	days := make([]string, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]DailyTotal, 0, len(days))
	for _, d := range days {
		out = append(out, DailyTotal{Date: d, Amount: sums[d]})
	}
	return out
}

// Report bundles every chart of the analytics tab.
type Report struct {
	Summary    Summary         `json:"summary"`
	Categories []CategoryTotal `json:"categories"`
	Students   []StudentTotal  `json:"students"`
	Daily      []DailyTotal    `json:"daily"`
}

func BuildReport(txs []domain.Transaction) Report {
	return Report{
		Summary:    Summarize(txs),
		Categories: CategoryTotals(txs),
		Students:   StudentTotals(txs),
		Daily:      DailyTotals(txs),
	}
}
