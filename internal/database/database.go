// /internal/database/database.go
package database

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/copiiworld/memory-box/internal/model"
)

var DB *gorm.DB

// ConnectDB abre a conexão e roda as migrações. Com DATABASE_URL usa
// Postgres (Docker/produção); sem ela cai para um SQLite local, igual
// ao ambiente de desenvolvimento.
func ConnectDB() {
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "memory_box.db"
		}
		log.Printf("DATABASE_URL não definida, usando SQLite local em %s", path)
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}
	if err != nil {
		log.Fatalf("Falha ao conectar ao banco de dados: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Falha ao executar migrações:", err)
	}
	log.Println("Conexão com o banco estabelecida e migrações concluídas.")
}

// Migrate roda o AutoMigrate de todos os modelos. Exposta para os
// testes poderem preparar um banco em memória.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Order{}, &model.ImageCrop{},
		&model.Stock{}, &model.PackagingStock{},
		&model.Purchase{},
		&model.SiteSettings{}, &model.CostSettings{},
		&model.BackgroundMedia{},
		&model.VariantInfo{}, &model.VariantImage{},
	)
}
