package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("LoadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(migrations) == 0 {
			t.Fatal("expected at least one embedded migration")
		}
		for _, migration := range migrations {
			if migration.Up == "" || migration.Down == "" {
				t.Errorf("migration %d missing up or down SQL", migration.Version)
			}
		}
		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Error("expected migrations sorted by version")
			}
		}
	})

	t.Run("RunMigrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		for _, table := range []string{"credentials", "search_history", "schema_migrations"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}

		t.Run("Idempotent", func(t *testing.T) {
			if err := RunMigrations(db); err != nil {
				t.Errorf("expected re-run to be a no-op, got %v", err)
			}
		})
	})

	t.Run("RollbackMigration", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='credentials'").Scan(&name)
		if err == nil {
			t.Error("expected credentials table dropped after rollback")
		}

		t.Run("Nothing To Rollback", func(t *testing.T) {
			if err := RollbackMigration(db); err == nil {
				t.Error("expected error with no applied migrations")
			}
		})
	})

	t.Run("RemoveComments", func(t *testing.T) {
		sql := `CREATE TABLE t ( -- trailing comment
	id TEXT -- another
)`
		cleaned := removeComments(sql)
		if cleaned != "CREATE TABLE t (\nid TEXT\n)" {
			t.Errorf("unexpected cleaned SQL: %q", cleaned)
		}
	})
}
