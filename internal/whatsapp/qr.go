package whatsapp

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

const qrGridSize = 21

// GenerateMockQR builds a random-cell SVG encoded as a data URL. It looks like
// a QR code in the UI but encodes nothing; the pairing handshake it stands in
// for is simulated.
func GenerateMockQR() string {
	buf := make([]byte, qrGridSize*qrGridSize/8+1)
	_, _ = rand.Read(buf)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, qrGridSize, qrGridSize))
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, qrGridSize, qrGridSize))
	for y := 0; y < qrGridSize; y++ {
		for x := 0; x < qrGridSize; x++ {
			bit := y*qrGridSize + x
			if buf[bit/8]&(1<<(uint(bit)%8)) != 0 {
				svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="1" height="1"/>`, x, y))
			}
		}
	}
	svg.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg.String()))
}
