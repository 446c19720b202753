package db

import (
	"path/filepath"
	"strings"
	"testing"

	"task-server/confs"
	"task-server/entities"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm/logger"
)

func TestPostgresDSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  confs.Config
		want string
	}{
		{"url gets sslmode", confs.Config{DBURL: "postgres://u:p@db.example.com/tasks"}, "postgres://u:p@db.example.com/tasks?sslmode=require"},
		{"url with query", confs.Config{DBURL: "postgres://h/tasks?connect_timeout=5"}, "postgres://h/tasks?connect_timeout=5&sslmode=require"},
		{"url keeps sslmode", confs.Config{DBURL: "postgres://h/tasks?sslmode=disable"}, "postgres://h/tasks?sslmode=disable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := postgresDSN(&tc.cfg); got != tc.want {
				t.Fatalf("dsn=%q want=%q", got, tc.want)
			}
		})
	}

	local := confs.Config{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "tasks"}
	if got := postgresDSN(&local); !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("local dsn=%q", got)
	}
}

func TestOpenMigratesSchema(t *testing.T) {
	database, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "tasks.db")), logger.Discard)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	m := database.GetDB().Migrator()
	if !m.HasTable(&entities.User{}) || !m.HasTable(&entities.Task{}) {
		t.Fatalf("expected users and tasks tables")
	}
}
