package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes the compression middleware.
type BrotliConfig struct {
	Quality   int
	MinLength int
	// SkipPrefixes lists request paths served uncompressed.
	SkipPrefixes []string
}

// DefaultBrotliConfig favours latency over ratio since pages are rendered
// per request.
var DefaultBrotliConfig = BrotliConfig{
	Quality:   5,
	MinLength: 1024,
}

// compressibleTypes lists Content-Type prefixes worth compressing.
var compressibleTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"image/svg+xml",
}

// brotliResponse buffers the head of a body until it is known to be worth
// compressing. Bodies shorter than minLength are sent as-is.
type brotliResponse struct {
	gin.ResponseWriter
	pool      *sync.Pool
	enc       *brotli.Writer
	pending   []byte
	minLength int
	checked   bool
	passThru  bool
}

func (br *brotliResponse) Write(data []byte) (int, error) {
	if !br.checked {
		br.checked = true
		br.passThru = !isCompressible(br.Header().Get("Content-Type"))
	}
	if br.passThru {
		return br.ResponseWriter.Write(data)
	}
	if br.enc != nil {
		return br.enc.Write(data)
	}

	br.pending = append(br.pending, data...)
	if len(br.pending) < br.minLength {
		return len(data), nil
	}

	br.startEncoding()
	if _, err := br.enc.Write(br.pending); err != nil {
		return 0, err
	}
	br.pending = nil
	return len(data), nil
}

func (br *brotliResponse) WriteString(s string) (int, error) {
	return br.Write([]byte(s))
}

func (br *brotliResponse) startEncoding() {
	h := br.Header()
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")

	br.enc = br.pool.Get().(*brotli.Writer)
	br.enc.Reset(br.ResponseWriter)
}

// Flush pushes out whatever is buffered, compressed or not.
func (br *brotliResponse) Flush() {
	if br.enc != nil {
		_ = br.enc.Flush()
	} else if len(br.pending) > 0 {
		_, _ = br.ResponseWriter.Write(br.pending)
		br.pending = nil
	}
	br.ResponseWriter.Flush()
}

func (br *brotliResponse) close() error {
	if br.enc == nil {
		if len(br.pending) == 0 {
			return nil
		}
		_, err := br.ResponseWriter.Write(br.pending)
		br.pending = nil
		return err
	}

	err := br.enc.Close()
	br.pool.Put(br.enc)
	br.enc = nil
	return err
}

// Brotli compresses text responses for clients sending Accept-Encoding: br.
func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	pool := &sync.Pool{
		New: func() any {
			return brotli.NewWriterLevel(nil, cfg.Quality)
		},
	}

	return func(c *gin.Context) {
		if !wantsBrotli(c, cfg.SkipPrefixes) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		br := &brotliResponse{
			ResponseWriter: c.Writer,
			pool:           pool,
			minLength:      cfg.MinLength,
		}
		c.Writer = br

		defer func() {
			if err := br.close(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

func wantsBrotli(c *gin.Context, skip []string) bool {
	if c.Request.Method == http.MethodHead {
		return false
	}
	// The Upgrade handshake fails if the response is wrapped or buffered.
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return false
	}
	for _, prefix := range skip {
		if strings.HasPrefix(c.Request.URL.Path, prefix) {
			return false
		}
	}

	for _, enc := range strings.Split(c.GetHeader("Accept-Encoding"), ",") {
		// Strip q-values such as "br;q=1.0".
		name, _, _ := strings.Cut(enc, ";")
		if strings.EqualFold(strings.TrimSpace(name), "br") {
			return true
		}
	}
	return false
}

func isCompressible(contentType string) bool {
	if contentType == "" {
		return true
	}
	for _, prefix := range compressibleTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
