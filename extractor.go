package readmode

// Engine names an extraction implementation.
type Engine string

// Engine constants for the extractors shipped with readmode.
const (
	EngineNative      Engine = "native"
	EngineReadability Engine = "readability"
	EngineTrafilatura Engine = "trafilatura"
)

// Engines lists every known engine in display order.
func Engines() []Engine {
	return []Engine{EngineNative, EngineReadability, EngineTrafilatura}
}

// Article holds the readable content extracted from an HTML page.
type Article struct {
	// Title is the trimmed page title, empty when the page has none.
	Title string

	// ContentHTML is the cleaned article fragment serialized as HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// TextContent is the flattened visible text of the fragment.
	TextContent string

	// Warnings lists non-fatal problems met during extraction,
	// such as image sources that could not be resolved.
	Warnings []string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes decoded HTML and returns the main content.
	// pageURL is optional; when set it is used to resolve relative
	// resource paths in the content.
	Extract(html, pageURL string) (*Article, error)
}
