package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress comprime respostas JSON e CSV quando o cliente aceita gzip
func Compress() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	}
}
