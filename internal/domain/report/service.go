package report

// ReportService renders an imported attendance report into downloadable
// documents. Renderers are pure: the same request yields the same bytes
// except for timestamps embedded by the container formats.
type ReportService interface {
	RenderPDF(req RenderRequest) (Document, error)
	RenderCSV(req RenderRequest) (Document, error)
	RenderXLSX(req RenderRequest) (Document, error)

	// Render dispatches on format.
	Render(req RenderRequest, format Format) (Document, error)
}
