package upload

import (
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gosimple/slug"

	"github.com/roster-manager/backend/internal/models"
)

// Extensions is a whitelist of lower-case file extensions without the dot.
type Extensions map[string]struct{}

// NewExtensions builds a whitelist; entries may carry a leading dot and any case.
func NewExtensions(exts ...string) Extensions {
	set := make(Extensions, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

var (
	// RosterExtensions are the accepted roster file types.
	RosterExtensions = NewExtensions("csv")
	// PhotoExtensions are the accepted image types.
	PhotoExtensions = NewExtensions("jpg", "jpeg", "png", "gif")
)

// Allows reports whether filename has a whitelisted extension.
func (e Extensions) Allows(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := e[strings.ToLower(filename[i+1:])]
	return ok
}

func init() {
	slug.Lowercase = false
}

// SecureFilename reduces an uploaded filename to a safe plain name. Any
// directory part is dropped, whitespace runs become underscores and each
// dot-separated part is slugified with its case kept, so a name written in
// a roster's Picture column survives unchanged. It returns "" when nothing
// usable remains.
func SecureFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(base, ".") {
		if p = slug.Make(strings.Join(strings.Fields(p), "_")); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// Check validates an uploaded file against a whitelist and returns the name
// it should be stored under.
func Check(fh *multipart.FileHeader, exts Extensions) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", models.ErrMissingFile
	}
	if !exts.Allows(fh.Filename) {
		return "", fmt.Errorf("%w: %s", models.ErrInvalidFileType, fh.Filename)
	}

	name := SecureFilename(fh.Filename)
	if name == "" || !exts.Allows(name) {
		return "", fmt.Errorf("%w: %s", models.ErrInvalidFileType, fh.Filename)
	}
	return name, nil
}
