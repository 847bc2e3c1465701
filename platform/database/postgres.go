package database

import (
	"os"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	_ "github.com/joho/godotenv/autoload"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

func PostgreSQLConnection() *pg.DB {
	return pg.Connect(&pg.Options{
		User:     os.Getenv("DB_USER"),
		Addr:     os.Getenv("DB_ADDR"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
	})
}

func EnsureSchema(db *pg.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.GameSave)(nil),
	}
	for _, table := range tables {
		err := db.Model(table).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
