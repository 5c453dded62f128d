// /internal/service/qr.go
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRTamanhoPx é o lado do PNG gerado para cada pedido.
const QRTamanhoPx = 512

// GerarQRPedido grava o QR com o deep link {frontend}/order/{id} em
// mediaDir/qrcodes e devolve o caminho relativo salvo no pedido.
func GerarQRPedido(frontendURL string, pedidoID uint, mediaDir string) (string, error) {
	link := fmt.Sprintf("%s/order/%d", strings.TrimRight(frontendURL, "/"), pedidoID)

	if err := os.MkdirAll(filepath.Join(mediaDir, "qrcodes"), 0o755); err != nil {
		return "", err
	}
	rel := filepath.Join("qrcodes", fmt.Sprintf("pedido_%d.png", pedidoID))
	if err := qrcode.WriteFile(link, qrcode.Medium, QRTamanhoPx, filepath.Join(mediaDir, rel)); err != nil {
		return "", err
	}
	return rel, nil
}
