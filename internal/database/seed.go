// /internal/database/seed.go
package database

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/copiiworld/memory-box/internal/model"
	"github.com/copiiworld/memory-box/internal/store"
)

// SeedAdmin cria o usuário do painel se ainda não existir. Email e
// senha vêm do ambiente (com padrão só para desenvolvimento).
func SeedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@memorybox.local"
	}
	senha := os.Getenv("ADMIN_PASSWORD")
	if senha == "" {
		senha = "admin-dev-123"
	}

	var user model.Usuario
	result := DB.Where("email = ?", email).First(&user)
	if result.Error != nil && result.Error == gorm.ErrRecordNotFound {
		log.Println("Usuário admin não encontrado, criando um novo...")

		senhaHash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Falha ao criar hash da senha do admin: %v", err)
		}

		admin := model.Usuario{
			Nome:      "Admin",
			Email:     email,
			SenhaHash: string(senhaHash),
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Fatalf("Falha ao criar o usuário admin: %v", err)
		}
		log.Println("Usuário admin criado com sucesso.")
	}
}

// SeedStock garante as 8 linhas de estoque (4 variantes x 2 tipos) e
// as 2 linhas de embalagem, todas começando em zero.
func SeedStock() {
	if err := store.EnsureStockRows(DB); err != nil {
		log.Fatalf("Falha ao criar linhas de estoque: %v", err)
	}
	if err := store.EnsurePackagingRows(DB); err != nil {
		log.Fatalf("Falha ao criar linhas de embalagem: %v", err)
	}
}

// SeedSettings materializa os dois singletons de configuração.
func SeedSettings() {
	if _, err := store.GetSiteSettings(DB); err != nil {
		log.Fatalf("Falha ao criar SiteSettings: %v", err)
	}
	if _, err := store.GetCostSettings(DB); err != nil {
		log.Fatalf("Falha ao criar CostSettings: %v", err)
	}
}
