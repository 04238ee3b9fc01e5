package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExt lists file extensions Load understands.
var SupportedExt = []string{".geojson", ".json", ".wkt", ".csv"}

// Load reads any supported lon/lat file into projected features.
func Load(path string) ([]Feature, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(data))
	default:
		return nil, fmt.Errorf("%w: file %q", ErrUnsupported, ext)
	}
}
