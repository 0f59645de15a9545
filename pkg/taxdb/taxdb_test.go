package taxdb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/metanextviro/contigtax/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// newTestDB builds a minimal taxonomy database with a viral lineage:
// root -> Viruses (superkingdom) -> Siphoviridae (family) -> Lambdavirus
// (genus).
func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxa.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	schema := `
	create table nodes (tax_id integer primary key, parent_id integer, rank text);
	create table names (tax_id integer primary key, name text);
	insert into nodes values
		(1, 1, 'no rank'),
		(10239, 1, 'superkingdom'),
		(10699, 10239, 'family'),
		(186765, 10699, 'genus');
	insert into names values
		(1, 'root'),
		(10239, 'Viruses'),
		(10699, 'Siphoviridae'),
		(186765, 'Lambdavirus');
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return path
}

func TestLineageWalksToRoot(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	chain, err := db.Lineage(context.Background(), 186765)
	require.NoError(t, err)

	require.Len(t, chain, 4)
	assert.Equal(t, "root", chain[0].Name, "chain is root-first")
	assert.Equal(t, "Viruses", chain[1].Name)
	assert.Equal(t, "superkingdom", chain[1].Rank)
	assert.Equal(t, "Lambdavirus", chain[3].Name)
}

func TestLineageUnknownTaxID(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Lineage(context.Background(), 424242)
	assert.True(t, errors.Is(err, taxonomy.ErrTaxIDNotFound))
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.sqlite"))
	assert.True(t, errors.Is(err, ErrNoDatabase))
}

// The database satisfies the resolver's lookup contract end to end.
func TestResolverAgainstDatabase(t *testing.T) {
	db, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer db.Close()

	lin := taxonomy.NewResolver(db).Resolve(context.Background(), []string{"186765"})

	assert.Equal(t, "Viruses", lin[taxonomy.RankSuperkingdom])
	assert.Equal(t, "Siphoviridae", lin[taxonomy.RankFamily])
	assert.Equal(t, "Lambdavirus", lin[taxonomy.RankGenus])
}
