package compose

// Document is a rendered artifact: markdown for the content store, an HTML
// fragment plus title/subtitle for publishing channels. Rendering is a pure
// function of its inputs, so identical inputs give byte-identical documents.
type Document struct {
	Title    string
	Subtitle string
	Markdown string
	HTML     string
}
