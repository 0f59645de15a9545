// sqlite-backed taxonomy lookup. The database mirrors the NCBI taxdump
// layout: a nodes table with parent links and rank labels, and a names
// table with one scientific name per node.

package taxdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/metanextviro/contigtax/pkg/taxonomy"

	_ "modernc.org/sqlite"
)

// ErrNoDatabase is returned when the taxonomy database file is absent.
var ErrNoDatabase = errors.New("taxonomy database does not exist")

// maxDepth caps the ancestor walk so a corrupt parent cycle cannot hang
// a lookup.
const maxDepth = 64

// TaxDB resolves taxonomic identifiers against a local sqlite database.
// It satisfies taxonomy.LineageLookup.
type TaxDB struct {
	db *sql.DB
}

func Open(path string) (*TaxDB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy database: %w", err)
	}

	return &TaxDB{db: db}, nil
}

func (t *TaxDB) Close() error {
	return t.db.Close()
}

// Lineage walks the ancestor chain of taxID up to the root and returns it
// root-first, each node carrying its rank label and scientific name.
// Unknown identifiers yield taxonomy.ErrTaxIDNotFound.
func (t *TaxDB) Lineage(ctx context.Context, taxID int) ([]taxonomy.Node, error) {

	qstring := `select n.parent_id, n.rank, coalesce(m.name, '')
	            from nodes n left join names m on m.tax_id = n.tax_id
	            where n.tax_id = ?;`

	stm, err := t.db.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("prepare lineage query: %w", err)
	}
	defer stm.Close()

	var chain []taxonomy.Node
	current := taxID

	for depth := 0; depth < maxDepth; depth++ {
		var parent int
		var rank, name string

		err := stm.QueryRowContext(ctx, current).Scan(&parent, &rank, &name)
		if err == sql.ErrNoRows {
			if depth == 0 {
				return nil, fmt.Errorf("%w: %d", taxonomy.ErrTaxIDNotFound, taxID)
			}
			// Broken parent link partway up; keep what resolved so far.
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lineage query for %d: %w", current, err)
		}

		chain = append(chain, taxonomy.Node{TaxID: current, Rank: rank, Name: name})

		if parent == current || parent == 0 {
			break
		}
		current = parent
	}

	// Reverse to root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}
