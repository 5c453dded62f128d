// /internal/handler/stats_handler.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/copiiworld/memory-box/internal/database"
	"github.com/copiiworld/memory-box/internal/service"
)

// StatsHandler serve o relatório de vendas do painel admin.
type StatsHandler struct{}

// GetStats devolve as séries e o resumo de vendas. Aceita
// ?days= (1..365, padrão 30) e ?months= (1..24, padrão 12); valores
// fora da faixa são ajustados para dentro dela.
func (h *StatsHandler) GetStats(c *gin.Context) {
	days := parseIntOu(c.Query("days"), 30)
	months := parseIntOu(c.Query("months"), 12)

	est, err := service.GerarEstatisticas(database.DB, days, months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar as estatísticas."})
		return
	}
	c.JSON(http.StatusOK, est)
}

func parseIntOu(s string, padrao int) int {
	if s == "" {
		return padrao
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return padrao
	}
	return v
}
