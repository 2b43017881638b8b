// Package fixture serves the bundled purchase datasets.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

//go:embed data/*.json
var files embed.FS

var datasetFiles = map[domain.Dataset]string{
	domain.DatasetStudent: "data/student_transaction.json",
	domain.DatasetVendor:  "data/vendor_canteen.json",
}

// Source is a read-only ports.TransactionSource over the embedded files.
// Each dataset is decoded once.
type Source struct {
	mu    sync.Mutex
	cache map[domain.Dataset][]domain.Transaction
}

var _ ports.TransactionSource = (*Source)(nil)

func NewSource() *Source {
	return &Source{cache: make(map[domain.Dataset][]domain.Transaction)}
}

// Transactions returns a copy so callers cannot alter the cached dataset.
func (s *Source) Transactions(ctx context.Context, dataset domain.Dataset) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, ok := s.cache[dataset]
	if !ok {
		var err error
		txs, err = Load(dataset)
		if err != nil {
			return nil, err
		}
		s.cache[dataset] = txs
	}

	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	return out, nil
}

// Load decodes one embedded dataset.
func Load(dataset domain.Dataset) ([]domain.Transaction, error) {
	name, ok := datasetFiles[dataset]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown dataset %q", dataset)
	}
	f, err := files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a JSON array of transaction records.
func Parse(r io.Reader) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := json.NewDecoder(r).Decode(&txs); err != nil {
		return nil, fmt.Errorf("fixture: decode transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}
