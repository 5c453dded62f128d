// /internal/handler/auth_handler_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/middleware"
	"github.com/copiiworld/memory-box/internal/model"
)

const segredoDeTeste = "segredo-jwt-de-teste"

func requisicaoComToken(t *testing.T, metodo, caminho, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(metodo, caminho, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func executar(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func criarUsuario(t *testing.T, email, senha string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := model.Usuario{Nome: "Admin", Email: email, SenhaHash: string(hash)}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
}

func TestLogin(t *testing.T) {
	setupBancoDeTeste(t)
	criarUsuario(t, "admin@teste.local", "senha-certa")

	h := &AuthHandler{JWTSecret: segredoDeTeste}
	router := gin.New()
	router.POST("/api/auth/login", h.Login)

	t.Run("sem campos devolve 400", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, esperado 400", rec.Code)
		}
	})

	t.Run("senha errada devolve 401", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "admin@teste.local",
			"password": "senha-errada",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})

	t.Run("email desconhecido devolve 401", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "outro@teste.local",
			"password": "senha-certa",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})

	t.Run("credenciais corretas devolvem um token válido", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "admin@teste.local",
			"password": "senha-certa",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperado 200: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Token string `json:"token"`
			Nome  string `json:"nome"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Token == "" {
			t.Fatal("token vazio")
		}

		token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
			return []byte(segredoDeTeste), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token não valida com o segredo: %v", err)
		}
	})
}

// TestJWTProtected confere que o grupo admin rejeita requisições sem
// token e aceita as autenticadas pelo login.
func TestJWTProtected(t *testing.T) {
	setupBancoDeTeste(t)
	criarUsuario(t, "admin@teste.local", "senha-certa")

	h := &AuthHandler{JWTSecret: segredoDeTeste}
	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	admin := router.Group("/api", middleware.JWTProtected(segredoDeTeste))
	admin.GET("/protegida", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("sem token devolve 401", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodGet, "/api/protegida", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})

	t.Run("token assinado com outro segredo devolve 401", func(t *testing.T) {
		alheio := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
		assinado, _ := alheio.SignedString([]byte("outro-segredo"))

		req := requisicaoComToken(t, http.MethodGet, "/api/protegida", assinado)
		rec := executar(router, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, esperado 401", rec.Code)
		}
	})

	t.Run("token do login passa", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "admin@teste.local",
			"password": "senha-certa",
		})
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}

		req := requisicaoComToken(t, http.MethodGet, "/api/protegida", resp.Token)
		rec2 := executar(router, req)
		if rec2.Code != http.StatusOK {
			t.Errorf("status = %d, esperado 200: %s", rec2.Code, rec2.Body.String())
		}
	})
}
