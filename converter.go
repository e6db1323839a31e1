package webscan

// Converter converts fetched HTML documents to Markdown.
type Converter interface {
	// Convert transforms html into Markdown. Relative links and image
	// sources are resolved against pageURL when it is not empty.
	Convert(html, pageURL string) (string, error)
}
