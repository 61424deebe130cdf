package order

import "fmt"

// Status is the closed set of order states. An order only ever moves
// forward: Pending -> In Progress -> Completed -> Paid.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusPaid       Status = "Paid"
)

// next holds the single legal successor of each state. Paid is terminal.
var next = map[Status]Status{
	StatusPending:    StatusInProgress,
	StatusInProgress: StatusCompleted,
	StatusCompleted:  StatusPaid,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusPaid:
		return true
	}
	return false
}

// CanTransition reports whether to is the immediate successor of s. Skipped
// and backward transitions are rejected, so every order passes through each
// intermediate state exactly once.
func (s Status) CanTransition(to Status) bool {
	return next[s] == to
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// ParseStatusFilter maps raw filter values onto statuses. An empty input
// yields an empty filter, which the ledger treats as "match nothing".
func ParseStatusFilter(raw []string) ([]Status, error) {
	statuses := make([]Status, 0, len(raw))
	for _, r := range raw {
		s, err := ParseStatus(r)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}
