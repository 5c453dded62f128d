// /internal/service/images.go
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // registro do decoder PNG
	"io"

	"github.com/nfnt/resize"
)

// TamanhoRecorte é a resolução quadrada final de cada foto.
const TamanhoRecorte = 800

// CropRect é o retângulo de recorte enviado pelo frontend (Cropper.js
// manda floats).
type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var ErrCropInvalido = errors.New("crop_data inválido: esperado JSON com x, y, width e height positivos")

// ParseCropRect interpreta o JSON do retângulo. Width/height precisam
// ser positivos; x/y podem vir fora da imagem (são ajustados depois).
func ParseCropRect(raw []byte) (CropRect, error) {
	var rect CropRect
	if err := json.Unmarshal(raw, &rect); err != nil {
		return CropRect{}, ErrCropInvalido
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return CropRect{}, ErrCropInvalido
	}
	return rect, nil
}

// GerarImagemRecortada decodifica a imagem original, recorta segundo o
// retângulo (ajustado aos limites da imagem), redimensiona para o
// quadrado final e devolve o JPEG re-codificado.
func GerarImagemRecortada(r io.Reader, rect CropRect) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	recorte := recortar(src, rect)
	final := resize.Resize(TamanhoRecorte, TamanhoRecorte, recorte, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, final, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// recortar aplica o retângulo deslocando-o para dentro dos limites da
// imagem. O ajuste só move x/y; width/height pedidos são mantidos,
// salvo quando maiores que a própria imagem.
func recortar(src image.Image, rect CropRect) image.Image {
	limites := src.Bounds()
	srcW, srcH := limites.Dx(), limites.Dy()

	w, h := int(rect.Width), int(rect.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > srcW {
		w = srcW
	}
	if h > srcH {
		h = srcH
	}

	x := deslocarParaDentro(int(rect.X), w, srcW)
	y := deslocarParaDentro(int(rect.Y), h, srcH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	origem := image.Pt(limites.Min.X+x, limites.Min.Y+y)
	draw.Draw(dst, dst.Bounds(), src, origem, draw.Src)
	return dst
}

// deslocarParaDentro move a origem do recorte para que [pos, pos+tam)
// caiba em [0, limite).
func deslocarParaDentro(pos, tam, limite int) int {
	if pos < 0 {
		return 0
	}
	if pos+tam > limite {
		return limite - tam
	}
	return pos
}
