package queries

import (
	"errors"
	"fmt"
	"io"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/output"
	"github.com/JosLopes/LI3-sub001/query"
)

// NamePrefix answers query type 3: every active user whose name starts
// with the given prefix, ordered by name and then id. Multi-word
// prefixes arrive as a single quoted argument:
//
//	3 "José Carlos"
type NamePrefix struct{}

type namePrefixArgs struct {
	prefix string
}

func (q *NamePrefix) ParseArgs(args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	if args[0] == "" {
		return nil, errors.New("empty prefix")
	}
	return namePrefixArgs{prefix: args[0]}, nil
}

func (q *NamePrefix) Execute(db *database.Database, _ interface{}, inst *query.Instance, out io.Writer) error {
	args := inst.Args.(namePrefixArgs)

	t := &output.Table{Columns: []string{"id", "name"}}
	db.UsersWithNamePrefix(args.prefix, func(u *database.User) bool {
		if u.AccountActive {
			t.Rows = append(t.Rows, []string{u.ID, u.Name})
		}
		return true
	})
	return output.For(inst.Formatted, out).Format(t)
}
