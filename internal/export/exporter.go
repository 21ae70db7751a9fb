// Package export holds the summary-export collaborator boundary. The core
// engine depends only on the Exporter signature; rendering destinations are
// interchangeable.
package export

// Exporter turns a session summary into a document and returns its path
type Exporter interface {
	Export(sessionName, summary string) (string, error)
}
