package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type WalletTxType string

const (
	WalletTxRecharge WalletTxType = "recharge"
	WalletTxSpent    WalletTxType = "spent"
)

type WalletTxStatus string

const (
	WalletTxPending   WalletTxStatus = "pending"
	WalletTxCompleted WalletTxStatus = "completed"
	WalletTxFailed    WalletTxStatus = "failed"
)

const DefaultRechargeDescription = "Wallet recharge"

// MaxRechargeAmount caps a single recharge. Amounts are stored with two
// decimals, so finer values are rejected rather than rounded.
const MaxRechargeAmount = 100000

type WalletTransaction struct {
	ID          string         `json:"id"`
	Amount      float64        `json:"amount"`
	Type        WalletTxType   `json:"type"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Category    Category       `json:"category,omitempty"`
	Status      WalletTxStatus `json:"status"`
}

type Parent struct {
	ID            string              `json:"id"`
	Email         string              `json:"email"`
	ParentName    string              `json:"parent_name"`
	StudentName   string              `json:"student_name"`
	StudentID     string              `json:"student_id"`
	StudentRollNo string              `json:"student_roll_no"`
	ParentPhone   string              `json:"parent_phone"`
	WalletBalance float64             `json:"wallet_balance"`
	Transactions  []WalletTransaction `json:"transactions"`
	CreatedAt     time.Time           `json:"created_at"`
	PasswordHash  string              `json:"-"`
}

// ParseRechargeAmount accepts the raw amount typed into the recharge form:
// a positive number of at most MaxRechargeAmount with no more than two
// decimal places.
func ParseRechargeAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount > MaxRechargeAmount {
		return 0, ErrInvalidAmount
	}

	cents := amount * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	return math.Round(cents) / 100, nil
}

// LedgerSum is the signed sum of completed wallet transactions. It should
// equal WalletBalance; nothing enforces that beyond the recharge path.
func LedgerSum(txs []WalletTransaction) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.Status != WalletTxCompleted {
			continue
		}
		switch tx.Type {
		case WalletTxRecharge:
			sum += tx.Amount
		case WalletTxSpent:
			sum -= tx.Amount
		}
	}
	return sum
}
