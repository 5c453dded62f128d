// /internal/service/images_test.go
package service

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
)

func pngDeTeste(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("falha ao gerar PNG de teste: %v", err)
	}
	return buf.Bytes()
}

func TestParseCropRect(t *testing.T) {
	t.Run("retângulo válido", func(t *testing.T) {
		rect, err := ParseCropRect([]byte(`{"x": 10.5, "y": 0, "width": 300, "height": 300}`))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if rect.X != 10.5 || rect.Width != 300 {
			t.Errorf("retângulo incorreto: %+v", rect)
		}
	})

	casos := []struct {
		nome string
		raw  string
	}{
		{"JSON quebrado", `{"x":`},
		{"width zero", `{"x": 0, "y": 0, "width": 0, "height": 100}`},
		{"height negativa", `{"x": 0, "y": 0, "width": 100, "height": -5}`},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			if _, err := ParseCropRect([]byte(c.raw)); !errors.Is(err, ErrCropInvalido) {
				t.Errorf("esperado ErrCropInvalido, veio %v", err)
			}
		})
	}
}

// TestGerarImagemRecortada confere que a saída é sempre o JPEG quadrado
// no tamanho final, mesmo quando o retângulo sai da imagem.
func TestGerarImagemRecortada(t *testing.T) {
	casos := []struct {
		nome string
		rect CropRect
	}{
		{"recorte dentro da imagem", CropRect{X: 10, Y: 10, Width: 50, Height: 30}},
		{"retângulo estourando os limites", CropRect{X: 90, Y: 40, Width: 50, Height: 50}},
		{"origem negativa", CropRect{X: -20, Y: -20, Width: 40, Height: 30}},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			jpg, err := GerarImagemRecortada(bytes.NewReader(pngDeTeste(t, 100, 60)), c.rect)
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			cfg, formato, err := image.DecodeConfig(bytes.NewReader(jpg))
			if err != nil {
				t.Fatalf("saída não decodifica: %v", err)
			}
			if formato != "jpeg" {
				t.Errorf("formato = %s, esperado jpeg", formato)
			}
			if cfg.Width != TamanhoRecorte || cfg.Height != TamanhoRecorte {
				t.Errorf("tamanho = %dx%d, esperado %dx%d", cfg.Width, cfg.Height, TamanhoRecorte, TamanhoRecorte)
			}
		})
	}

	t.Run("bytes que não são imagem", func(t *testing.T) {
		if _, err := GerarImagemRecortada(bytes.NewReader([]byte("não é imagem")), CropRect{Width: 10, Height: 10}); err == nil {
			t.Error("esperado erro para entrada inválida")
		}
	})
}

// TestRecortar confere o ajuste de limites: o retângulo é deslocado
// para dentro da imagem mantendo o tamanho pedido.
func TestRecortar(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	t.Run("desloca em vez de encolher", func(t *testing.T) {
		out := recortar(src, CropRect{X: 90, Y: 40, Width: 20, Height: 20})
		b := out.Bounds()
		if b.Dx() != 20 || b.Dy() != 20 {
			t.Errorf("recorte = %dx%d, esperado 20x20", b.Dx(), b.Dy())
		}
	})

	t.Run("maior que a imagem encolhe para ela", func(t *testing.T) {
		out := recortar(src, CropRect{X: 0, Y: 0, Width: 500, Height: 500})
		b := out.Bounds()
		if b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("recorte = %dx%d, esperado 100x50", b.Dx(), b.Dy())
		}
	})
}
