package webtech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := []byte("example.com [nginx, PHP]\n\nplain.org\nshop.example.com [WordPress]\n   \n")

	sites := Parse(content)
	require.Len(t, sites, 3)

	assert.Equal(t, "example.com", sites[0].URL)
	assert.Equal(t, []string{"nginx", "PHP"}, sites[0].Technologies)

	assert.Equal(t, "plain.org", sites[1].URL)
	assert.Empty(t, sites[1].Technologies)

	assert.Equal(t, "shop.example.com", sites[2].URL)
	assert.Equal(t, []string{"WordPress"}, sites[2].Technologies)
}

func TestParseEmptyBrackets(t *testing.T) {
	sites := Parse([]byte("example.com []\nother.com [ , , ]\n"))
	require.Len(t, sites, 2)
	assert.Empty(t, sites[0].Technologies)
	assert.Empty(t, sites[1].Technologies)
}

func TestParseCRLF(t *testing.T) {
	sites := Parse([]byte("a.com [nginx]\r\nb.com [PHP]\r\n"))
	require.Len(t, sites, 2)
	assert.Equal(t, "b.com", sites[1].URL)
}
