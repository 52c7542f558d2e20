package web

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed pages/*.html
var EmbeddedPagesFS embed.FS

const (
	homePageFile   = "pages/home.html"
	healthPageFile = "pages/health.html"
)

// Page is a fixed document served verbatim
type Page struct {
	Name        string
	ContentType string
	Body        []byte
}

// LoadPage reads a page from the embedded filesystem
func LoadPage(filePath string) (*Page, error) {
	body, err := fs.ReadFile(EmbeddedPagesFS, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded page %s: %w", filePath, err)
	}
	return &Page{
		Name:        path.Base(filePath),
		ContentType: getContentType(filePath),
		Body:        body,
	}, nil
}

// ListEmbeddedPages returns a list of all embedded pages for debugging
func ListEmbeddedPages() ([]string, error) {
	var files []string
	err := fs.WalkDir(EmbeddedPagesFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// getContentType returns the appropriate MIME type for the page extensions we embed
func getContentType(filePath string) string {
	switch path.Ext(filePath) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
