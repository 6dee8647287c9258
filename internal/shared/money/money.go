package money

import "math"

// Round2 membulatkan ke 2 desimal. Dipakai untuk jam lembur dan
// subtotal sebelum konversi ke satuan mata uang.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round membulatkan ke satuan mata uang terdekat. Hanya dipakai di
// titik presentasi akhir; rasio antara tetap presisi penuh.
func Round(v float64) float64 {
	return math.Round(v)
}

// Ceil membulatkan ke atas ke satuan mata uang. Konvensi statutori
// untuk potongan ESI.
func Ceil(v float64) float64 {
	return math.Ceil(v)
}
