// /internal/config/config.go
package config

import "os"

// Config reúne as variáveis de ambiente usadas pelo servidor.
// O arquivo .env é carregado no main (godotenv); aqui só lemos o ambiente.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	SessionKey  string
	// URL base do frontend React, usada para montar o deep link do QR.
	FrontendURL string
	// Webhooks n8n (opcionais). Vazio = não notifica.
	WebhookPedidoURL     string
	WebhookFinalizadoURL string
	// Diretório onde ficam recortes e QR codes gerados.
	MediaDir string
}

func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            getEnv("JWT_SECRET", "memory-box-dev-secret"),
		SessionKey:           getEnv("SESSION_KEY", "memory-box-session-dev"),
		FrontendURL:          os.Getenv("FRONTEND_URL"),
		WebhookPedidoURL:     os.Getenv("N8N_WEBHOOK_PEDIDO_URL"),
		WebhookFinalizadoURL: os.Getenv("N8N_WEBHOOK_FINALIZADO_URL"),
		MediaDir:             getEnv("MEDIA_DIR", "media"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
