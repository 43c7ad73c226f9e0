package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/splithaus/backend/internal/types"
)

// State identifies the lifecycle position of an expense.
type State uint8

const (
	StatePending State = iota
	StateCharged
	StateProvisionallyCharged
	StateReconciled
)

// Status is the lifecycle status of an expense. For reconciled expenses
// it carries the day the reconciliation ran.
//
// The value is persisted in the wording the operators know from the
// original sheet, including "Reconciled (dd/mm/yy)", but state checks
// never parse strings: they go through the State field.
type Status struct {
	State        State
	ReconciledOn types.Day
}

// StatusReconciled returns a Reconciled status for the given day.
func StatusReconciled(day types.Day) Status {
	return Status{State: StateReconciled, ReconciledOn: day}
}

// String returns the operator-facing wording of the status.
func (s Status) String() string {
	switch s.State {
	case StateCharged:
		return "Charged"
	case StateProvisionallyCharged:
		return "Provisionally Charged"
	case StateReconciled:
		return fmt.Sprintf("Reconciled (%s)", s.ReconciledOn.FormatDMY())
	default:
		return "Pending"
	}
}

var statusWhitespace = regexp.MustCompile(`\s+`)

// ParseStatus parses a stored status value.
//
// The sheet the data model comes from accumulated non-breaking spaces and
// stray whitespace in status cells, so parsing normalizes whitespace and
// ignores case. An empty value parses as Pending.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ReplaceAll(value, " ", " ")
	normalized = statusWhitespace.ReplaceAllString(normalized, " ")
	normalized = strings.ToLower(strings.TrimSpace(normalized))

	switch {
	case normalized == "" || normalized == "pending":
		return Status{State: StatePending}, nil
	case normalized == "charged":
		return Status{State: StateCharged}, nil
	case strings.HasPrefix(normalized, "provisionally charged"):
		return Status{State: StateProvisionallyCharged}, nil
	case strings.HasPrefix(normalized, "reconciled"):
		status := Status{State: StateReconciled}

		// The reconciliation day is part of the stored value, e.g.
		// "Reconciled (05/01/24)". A missing or unreadable day leaves
		// the zero value, the state is what matters.
		open := strings.Index(normalized, "(")
		closing := strings.Index(normalized, ")")
		if open != -1 && closing > open {
			if day, err := parseDMY(normalized[open+1 : closing]); err == nil {
				status.ReconciledOn = day
			}
		}

		return status, nil
	}

	return Status{}, fmt.Errorf("%w: %q", ErrStatusUnknown, value)
}

func parseDMY(value string) (types.Day, error) {
	var day, month, year int

	_, err := fmt.Sscanf(strings.TrimSpace(value), "%d/%d/%d", &day, &month, &year)
	if err != nil {
		return types.Day{}, err
	}

	if year < 100 {
		year += 2000
	}

	return types.NewDay(year, time.Month(month), day), nil
}

// Scan reads the value from the database.
func (s *Status) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok && value != nil {
		return fmt.Errorf("%w: %v", ErrStatusUnknown, value)
	}

	status, err := ParseStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Status) GormDataType() string {
	return "text"
}

// MarshalJSON implements the json.Marshaler interface.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Status) UnmarshalJSON(data []byte) error {
	status, err := ParseStatus(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}

	*s = status
	return nil
}
