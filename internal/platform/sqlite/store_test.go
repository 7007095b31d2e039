package sqlite_test

import (
	"testing"

	"github.com/agsdev/tasks-api/internal/platform/sqlite"
	"github.com/agsdev/tasks-api/internal/store/storetest"
	"github.com/agsdev/tasks-api/internal/testdb"
)

func newStores(t *testing.T) storetest.Stores {
	db := testdb.OpenSQLite(t)
	return storetest.Stores{
		Users: sqlite.NewSQLiteUserStore(db, nil),
		Tasks: sqlite.NewSQLiteTaskStore(db, nil),
	}
}

func TestSQLiteUserStore(t *testing.T) {
	storetest.RunUserStoreTests(t, newStores)
}

func TestSQLiteTaskStore(t *testing.T) {
	storetest.RunTaskStoreTests(t, newStores)
}
