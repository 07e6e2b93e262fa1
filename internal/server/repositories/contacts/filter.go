package contacts

import (
	"fmt"
	"strings"
)

// SearchFilter holds the optional substring filters for contact search.
// Absent (nil) fields impose no constraint; present fields are combined
// with AND. The name filter matches either first or last name.
type SearchFilter struct {
	Name  *string
	Email *string
	Phone *string
}

// buildPredicate folds the unconditional owner constraint and any present
// filters into a single WHERE clause with positional arguments. Matching is
// case-insensitive substring (ILIKE).
func (f SearchFilter) buildPredicate(username string) (string, []any) {
	conditions := []string{"username = $1"}
	args := []any{username}

	if f.Name != nil {
		n := len(args) + 1
		conditions = append(conditions,
			fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
		args = append(args, contains(*f.Name))
	}

	if f.Email != nil {
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", len(args)+1))
		args = append(args, contains(*f.Email))
	}

	if f.Phone != nil {
		conditions = append(conditions, fmt.Sprintf("phone ILIKE $%d", len(args)+1))
		args = append(args, contains(*f.Phone))
	}

	return strings.Join(conditions, " AND "), args
}

func contains(s string) string {
	return "%" + s + "%"
}
