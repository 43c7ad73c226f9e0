package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/splithaus/backend/internal/types"
	"gorm.io/gorm"
)

// TransactionType is the coded transaction category. The codes are kept
// from the source ledger so that exports stay comparable.
type TransactionType string

const (
	TransactionDeposit        TransactionType = "101 - Deposit"
	TransactionWithdrawal     TransactionType = "201 - Withdrawal"
	TransactionCharge         TransactionType = "401 - Charge"
	TransactionReconciliation TransactionType = "402 - Reconciliation"
)

// Transaction is one signed ledger entry.
//
// Charges and reconciliation adjustments are negative when the person
// owes money and positive for credits and refunds.
type Transaction struct {
	Model
	Date        types.Day       `json:"date"`
	Type        TransactionType `json:"type"`
	ExpenseID   *uint           `json:"expenseId,omitempty"`
	Expense     *Expense        `json:"-"`
	ExpenseType string          `json:"expenseType,omitempty"` // Denormalized from the expense
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Person      string          `json:"person"`  // Display name of the charged person
	Account     string          `json:"account"` // Account reference resolved from the people table
	Note        string          `json:"note,omitempty"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Person = strings.TrimSpace(t.Person)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID != 0 {
		return nil
	}

	id, err := nextID(tx, &Transaction{}, 1)
	if err != nil {
		return err
	}

	t.ID = id
	return nil
}

// NextTransactionID returns the ID the next transaction will get.
//
// Engines that append several transactions in one batch assign IDs
// themselves so that the rows get contiguous IDs in iteration order.
func NextTransactionID(db *gorm.DB) (uint, error) {
	return nextID(db, &Transaction{}, 1)
}

// OrderedTransactions returns a query for transactions in ledger order.
//
// The ledger ordering contract is (date ascending, id ascending). It is
// guaranteed at read time instead of physically re-sorting storage after
// every append.
func OrderedTransactions(db *gorm.DB) *gorm.DB {
	return db.Model(&Transaction{}).Order("date ASC, id ASC")
}

// TransactionsForExpense returns all transactions referencing an expense.
func TransactionsForExpense(db *gorm.DB, expenseID uint) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("expense_id = ?", expenseID).
		Order("date ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
