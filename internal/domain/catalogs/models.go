package catalogs

import "context"

// Kind names one of the affiliation catalogs.
type Kind string

const (
	KindARL          Kind = "arl"
	KindEPS          Kind = "eps"
	KindPensionFunds Kind = "pension-funds"
)

var Kinds = []Kind{KindARL, KindEPS, KindPensionFunds}

var tables = map[Kind]string{
	KindARL:          "arls",
	KindEPS:          "eps",
	KindPensionFunds: "pension_funds",
}

type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reader is the read-only view of the catalogs handed to components that
// need to list entries or check a reference.
type Reader interface {
	List(ctx context.Context, kind Kind) ([]Entry, error)
	Exists(ctx context.Context, kind Kind, id string) (bool, error)
}

// TableFor maps a kind to its table. Only known kinds are ever interpolated into SQL.
func TableFor(kind Kind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", ErrUnknownKind
	}
	return table, nil
}

func ParseKind(raw string) (Kind, error) {
	kind := Kind(raw)
	if _, ok := tables[kind]; !ok {
		return "", ErrUnknownKind
	}
	return kind, nil
}
