package webscan

// Scanner is the full capability surface offered to callers: document
// acquisition plus single-node extraction.
type Scanner interface {
	DocumentFetcher
	TextExtractor
	SelectorExtractor
}
