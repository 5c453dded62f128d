// /internal/handler/settings_handler_test.go
package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/model"
)

func novoSettingsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := &SettingsHandler{}
	router := gin.New()
	router.GET("/api/settings/prices", h.GetPrices)
	router.PATCH("/api/settings/prices", h.UpdatePrices)
	router.GET("/api/settings/costs", h.GetCosts)
	router.PATCH("/api/settings/costs", h.UpdateCosts)
	router.GET("/api/settings/background-media", h.ListBackgroundMedia)
	router.POST("/api/settings/background-media", h.CreateBackgroundMedia)
	return router
}

func TestGetPrices(t *testing.T) {
	setupBancoDeTeste(t)
	router := novoSettingsRouter(t)

	// A primeira leitura materializa o singleton com os padrões.
	rec := requisicaoJSON(t, router, http.MethodGet, "/api/settings/prices", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado 200: %s", rec.Code, rec.Body.String())
	}

	var s model.SiteSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.PriceSinLuz != 24000 || s.PriceConLuz != 42000 || s.DepositAmount != 12000 {
		t.Errorf("padrões incorretos: %+v", s)
	}

	var total int64
	database.DB.Model(&model.SiteSettings{}).Count(&total)
	if total != 1 {
		t.Errorf("%d linhas de SiteSettings, esperado o singleton", total)
	}
}

func TestUpdatePrices(t *testing.T) {
	setupBancoDeTeste(t)
	router := novoSettingsRouter(t)

	t.Run("preço negativo devolve 400", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPatch, "/api/settings/prices", map[string]any{
			"price_sin_luz": -1,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, esperado 400", rec.Code)
		}
	})

	t.Run("atualização parcial preserva o resto", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPatch, "/api/settings/prices", map[string]any{
			"price_sin_luz":  30000,
			"transfer_alias": "memory.box.mp",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperado 200: %s", rec.Code, rec.Body.String())
		}

		var s model.SiteSettings
		if err := database.DB.First(&s, 1).Error; err != nil {
			t.Fatal(err)
		}
		if s.PriceSinLuz != 30000 {
			t.Errorf("price_sin_luz = %d, esperado 30000", s.PriceSinLuz)
		}
		if s.TransferAlias != "memory.box.mp" {
			t.Errorf("transfer_alias = %q", s.TransferAlias)
		}
		if s.PriceConLuz != 42000 {
			t.Errorf("price_con_luz mudou para %d, deveria seguir 42000", s.PriceConLuz)
		}
	})
}

func TestUpdateCosts(t *testing.T) {
	setupBancoDeTeste(t)
	router := novoSettingsRouter(t)

	t.Run("corpo que não é objeto devolve 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/settings/costs",
			bytes.NewBufferString(`[1, 2, 3]`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, esperado 400", rec.Code)
		}
	})

	t.Run("objeto substitui a configuração e persiste", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPatch, "/api/settings/costs", map[string]any{
			model.CostKeyDieCut: 350,
			model.CostKeyGramsByVariant: map[string]any{
				"graphite": 100,
			},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperado 200: %s", rec.Code, rec.Body.String())
		}

		rec = requisicaoJSON(t, router, http.MethodGet, "/api/settings/costs", nil)
		var data map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
			t.Fatal(err)
		}
		if data[model.CostKeyDieCut] != float64(350) {
			t.Errorf("die_cut_cost = %v, esperado 350", data[model.CostKeyDieCut])
		}
	})
}

func TestBackgroundMedia(t *testing.T) {
	setupBancoDeTeste(t)
	router := novoSettingsRouter(t)

	t.Run("sem url devolve 400", func(t *testing.T) {
		rec := requisicaoJSON(t, router, http.MethodPost, "/api/settings/background-media", map[string]any{
			"kind": "image",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, esperado 400", rec.Code)
		}
	})

	t.Run("cria e lista em ordem de exibição", func(t *testing.T) {
		for _, corpo := range []map[string]any{
			{"kind": "video", "url": "/media/fundos/b.mp4", "display_order": 2},
			{"url": "/media/fundos/a.jpg", "display_order": 1},
		} {
			if rec := requisicaoJSON(t, router, http.MethodPost, "/api/settings/background-media", corpo); rec.Code != http.StatusCreated {
				t.Fatalf("criação falhou: %s", rec.Body.String())
			}
		}

		rec := requisicaoJSON(t, router, http.MethodGet, "/api/settings/background-media", nil)
		var itens []model.BackgroundMedia
		if err := json.Unmarshal(rec.Body.Bytes(), &itens); err != nil {
			t.Fatal(err)
		}
		if len(itens) != 2 {
			t.Fatalf("%d mídias, esperado 2", len(itens))
		}
		if itens[0].URL != "/media/fundos/a.jpg" {
			t.Errorf("ordem de exibição não respeitada: %+v", itens)
		}
		// Sem kind informado, o padrão é imagem.
		if itens[0].Kind != "image" {
			t.Errorf("kind = %s, esperado image", itens[0].Kind)
		}
	})
}
