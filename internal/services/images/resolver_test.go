package images

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleCandidateURLs(t *testing.T) {
	page := `<html><head>
<script>var data = [["https://upload.wikimedia.org/photos/maria_santos.jpg",640,480],
["https:\/\/example.com\/escaped.png",100,100]];</script>
</head><body>
<img src="data:image/gif;base64,R0lGOD">
<img src="https://example.com/tag-photo.jpeg">
<img data-src="https://example.com/lazy.png">
<img src="https://upload.wikimedia.org/photos/maria_santos.jpg">
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	urls := googleCandidateURLs(doc)

	// Script payload URLs come first, img sources after, without duplicates
	require.NotEmpty(t, urls)
	assert.Equal(t, "https://upload.wikimedia.org/photos/maria_santos.jpg", urls[0])
	assert.Contains(t, urls, "https://example.com/tag-photo.jpeg")
	assert.Contains(t, urls, "https://example.com/lazy.png")
	assert.NotContains(t, urls, "data:image/gif;base64,R0lGOD",
		"placeholder data URIs are never candidates via the script pass")

	count := 0
	for _, u := range urls {
		if u == "https://upload.wikimedia.org/photos/maria_santos.jpg" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGoogleCandidateURLsNoMatches(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, googleCandidateURLs(doc))
}
