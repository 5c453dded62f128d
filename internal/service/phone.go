// /internal/service/phone.go
package service

import "strings"

// PrefixoCelular é o prefixo de celular da Argentina (+54 9).
const PrefixoCelular = "+549"

// NormalizarTelefone converte o telefone digitado pelo cliente para o
// formato internacional usado nos webhooks:
//   - 10 dígitos -> prefixo +549
//   - 11 dígitos começando com 0 -> remove o 0 e aplica +549
//   - já começa com "+" -> passa sem mudar
//   - qualquer outra sequência de dígitos -> só ganha "+"
//
// Vazio devolve vazio (o caller pula a notificação).
func NormalizarTelefone(telefone string) string {
	limpo := strings.TrimSpace(telefone)
	if limpo == "" {
		return ""
	}
	if strings.HasPrefix(limpo, "+") {
		return limpo
	}

	digitos := soDigitos(limpo)
	if digitos == "" {
		return ""
	}

	switch {
	case len(digitos) == 10:
		return PrefixoCelular + digitos
	case len(digitos) == 11 && digitos[0] == '0':
		return PrefixoCelular + digitos[1:]
	default:
		return "+" + digitos
	}
}

func soDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
