package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/spendly/backend/config"
	"github.com/spendly/backend/internal/infra/db"
)

var once sync.Once
var database *Db

// Db is an in-memory SQLite database migrated with the application models.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
	order    []string
}

// NewDb opens the process-wide test database. models maps table name to
// model; order lists tables children first so deletes respect foreign keys.
func NewDb(models map[string]any, order []string) *Db {
	once.Do(
		func() {
			database = open(models, order)
		},
	)

	return database
}

func open(models map[string]any, order []string) *Db {
	conn, err := db.NewSQLiteConnection(&config.DatabaseConfig{Driver: "sqlite", URL: db.InMemorySQLiteURL})
	if err != nil {
		panic(err)
	}

	modelList := make([]any, 0, len(order))
	for _, table := range order {
		model, ok := models[table]
		if !ok {
			panic(fmt.Sprintf("table %q has no model", table))
		}
		modelList = append(modelList, model)
	}
	// Parents must exist before their children's foreign keys.
	for i, j := 0, len(modelList)-1; i < j; i, j = i+1, j-1 {
		modelList[i], modelList[j] = modelList[j], modelList[i]
	}

	if err := conn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate database. err: " + err.Error())
	}

	return &Db{
		Database: conn,
		DbConn:   conn.DB(),
		models:   models,
		order:    order,
	}
}

// ClearDB removes every row, soft-deleted ones included.
func (d *Db) ClearDB() error {
	for _, table := range d.order {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
