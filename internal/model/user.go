// /internal/model/user.go
package model

import "time"

// Usuario é o usuário do painel admin. Não existe cadastro público:
// a loja tem um único dono, criado pelo seed.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	Email     string    `gorm:"unique;not null" json:"email"`
	SenhaHash string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
