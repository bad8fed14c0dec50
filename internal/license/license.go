package license

import (
	"errors"
	"os"

	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"
)

const confidenceThreshold = 0.85

// DetectText checks whether text embeds a license and returns the SPDX
// identifier of the most confident match, or empty string if none found.
// The text is never written to disk.
func DetectText(text string) string {
	if text == "" {
		return ""
	}

	results, err := licensedb.Detect(memFiler{name: "LICENSE", content: []byte(text)})
	if err != nil {
		return ""
	}

	var bestID string
	var bestConf float32
	for id, match := range results {
		if match.Confidence > bestConf && match.Confidence >= confidenceThreshold {
			bestConf = match.Confidence
			bestID = id
		}
	}

	return bestID
}

// memFiler exposes a single in-memory file at the root of a virtual tree.
type memFiler struct {
	name    string
	content []byte
}

func (m memFiler) ReadFile(path string) ([]byte, error) {
	if path != m.name {
		return nil, os.ErrNotExist
	}
	return m.content, nil
}

func (m memFiler) ReadDir(path string) ([]filer.File, error) {
	if path != "" && path != "." {
		return nil, errors.New("not a directory: " + path)
	}
	return []filer.File{{Name: m.name}}, nil
}

func (m memFiler) Close() {}

func (m memFiler) PathsAreAlwaysSlash() bool { return true }
