package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFlattensRecipePage(t *testing.T) {
	page, err := ExtractText(`<html><head>
		<title>Best Pancakes</title>
		<style>body { color: red }</style>
	</head><body>
		<nav>Home | Recipes</nav>
		<h1>Best Pancakes</h1>
		<p>Fluffy and quick.</p>
		<ul><li>2 cups flour</li><li>1 cup milk</li></ul>
		<script>track()</script>
	</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Best Pancakes", page.Title)
	assert.Contains(t, page.Text, "Fluffy and quick.")
	assert.Contains(t, page.Text, "2 cups flour\n1 cup milk")
	assert.NotContains(t, page.Text, "track()")
	assert.NotContains(t, page.Text, "Home | Recipes")
	assert.NotContains(t, page.Text, "color: red")
}

func TestExtractTextFallsBackToH1Title(t *testing.T) {
	page, err := ExtractText(`<body><h1>Chili</h1><p>Spicy.</p></body>`)
	require.NoError(t, err)
	assert.Equal(t, "Chili", page.Title)
}

func TestExtractTextEmptyDocument(t *testing.T) {
	page, err := ExtractText("")
	require.NoError(t, err)
	assert.Empty(t, page.Title)
	assert.Empty(t, page.Text)
}
