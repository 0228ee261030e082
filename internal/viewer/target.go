// Package viewer builds the navigation target for opening a scraped
// document and hands it to a Navigator. Building a target is pure string
// work; nothing here touches the network.
package viewer

import (
	"path"
	"strings"

	"github.com/rshade/scrapeview/internal/records"
)

// DefaultDownloadHost is the remote host serving downloaded documents.
const DefaultDownloadHost = "http://188.245.216.211/public/download"

const (
	viewerRoutePrefix = "/pdf/"
	localPathRoot     = "DB-Legale-doc"
	localPathSubdir   = "downloaded"
)

// Target describes where to navigate to view a record.
type Target struct {
	// Route is the viewer route, keyed by the file name stem.
	Route string `json:"route"`
	// FileLink is the absolute download link handed to the viewer.
	FileLink string `json:"file_link"`
	// LocalPath is where the scraper stored the document on disk.
	LocalPath string `json:"local_path"`
}

// BuildTarget returns the target for rec in category. An empty host selects
// DefaultDownloadHost.
func BuildTarget(host string, category records.Category, rec records.Record) Target {
	if host == "" {
		host = DefaultDownloadHost
	}
	host = strings.TrimRight(host, "/")

	return Target{
		Route:     viewerRoutePrefix + FileStem(rec.FileName),
		FileLink:  host + "/" + category.Type + "/" + rec.FileLink,
		LocalPath: localPathRoot + "/" + category.Type + "/" + localPathSubdir + "/" + rec.FileLink,
	}
}

// FileStem returns name with its final extension removed:
// "decree.2024.pdf" becomes "decree.2024" and "README" is unchanged.
func FileStem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
