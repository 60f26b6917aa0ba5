package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyPortraitURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"jpg photo", "https://example.com/photos/maria-santos.jpg", true},
		{"png photo", "https://example.com/images/portrait.png", true},
		{"webp photo", "https://cdn.example.com/p/face.webp", true},
		{"wikimedia without extension check", "https://upload.wikimedia.org/wikipedia/commons/a/ab/Maria_Santos_official_portrait.jpg", true},
		{"relative url", "/images/photo.jpg", false},
		{"no extension on unknown host", "https://example.com/image/12345", false},
		{"party logo", "https://example.com/assets/party-logo.png", false},
		{"site icon", "https://example.com/favicon-icon.png", false},
		{"campaign banner", "https://example.com/banner-2025.jpg", false},
		{"national flag", "https://example.com/flag-philippines.png", false},
		{"city seal", "https://example.com/city-seal.png", false},
		{"poll chart", "https://example.com/results-chart.png", false},
		{"district map", "https://example.com/district-map.jpg", false},
		{"ad network", "https://tpc.googlesyndication.com/pic.jpg", false},
		{"tracking pixel host", "https://ad.doubleclick.net/img.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyPortraitURL(tt.url))
		})
	}
}
