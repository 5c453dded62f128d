// /internal/service/phone_test.go
package service

import "testing"

// TestNormalizarTelefone cobre os formatos que os clientes realmente
// digitam: número local de 10 dígitos, com 0 na frente, já
// internacional e lixo com separadores.
func TestNormalizarTelefone(t *testing.T) {
	casos := []struct {
		nome     string
		entrada  string
		esperado string
	}{
		{"dez dígitos ganha prefixo", "3511234567", "+5493511234567"},
		{"onze dígitos com zero inicial", "03511234567", "+5493511234567"},
		{"já internacional passa direto", "+5493511234567", "+5493511234567"},
		{"internacional de outro país passa direto", "+14155550123", "+14155550123"},
		{"separadores são ignorados", "351 123-4567", "+5493511234567"},
		{"comprimento fora do padrão só ganha +", "123456", "+123456"},
		{"vazio devolve vazio", "", ""},
		{"só espaços devolve vazio", "   ", ""},
		{"sem nenhum dígito devolve vazio", "abc", ""},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			got := NormalizarTelefone(c.entrada)
			if got != c.esperado {
				t.Errorf("NormalizarTelefone(%q) = %q, esperado %q", c.entrada, got, c.esperado)
			}
		})
	}
}
