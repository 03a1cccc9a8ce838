package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a named money container, e.g. "Cash" or "Bank account"
type Wallet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);not null;default:'IDR'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserWallet holds one user's balance inside a wallet
type UserWallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_wallets_user_wallet"`
	User      *User           `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WalletID  uint            `json:"wallet_id" gorm:"not null;uniqueIndex:idx_user_wallets_user_wallet"`
	Wallet    *Wallet         `json:"wallet,omitempty" gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transaction is a credit or debit ledger entry against a user wallet
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserWalletID    uint            `json:"user_wallet_id" gorm:"index;not null"`
	UserWallet      *UserWallet     `json:"-" gorm:"foreignKey:UserWalletID;constraint:OnDelete:CASCADE"`
	Type            string          `json:"type" gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference" gorm:"index"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// SignedAmount is positive for credits and negative for debits
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SumTransactions folds a ledger into a balance
func SumTransactions(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.SignedAmount())
	}
	return total
}
