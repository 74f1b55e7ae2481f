package models

// Transaction types derived from the sign of the underlying amount.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Transaction statuses accepted from mapped CSV columns.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCleared   = "cleared"
)

// DescriptionFallback is used when a statement entry carries no usable
// description text.
const DescriptionFallback = "Statement entry"

// ValidType reports whether s is one of the known transaction types.
func ValidType(s string) bool {
	switch s {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known transaction statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCleared:
		return true
	}
	return false
}
