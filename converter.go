package readmode

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., Article.ContentHTML).
	// pageURL is optional and used to make relative links absolute.
	Convert(html, pageURL string) (string, error)
}
