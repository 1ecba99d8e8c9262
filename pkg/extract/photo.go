package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/liciel-tools/missionscope/pkg/missions"
	"github.com/liciel-tools/missionscope/pkg/xmldoc"
)

const presentationLabel = "presentation"

// Row element names and column variants seen across Liciel versions.
var (
	photoRowTags  = []string{"ROW", "Row", "row", "Photo", "PHOTO"}
	photoTypeKeys = xmldoc.TagOrAttr("TypePhoto", "Type", "Libelle", "Colonne", "Champ")
	photoPathKeys = xmldoc.TagOrAttr("Fichier", "Chemin", "Path", "NomFichier")
)

var errEmptyPath = errors.New("empty photo path")

// presentationPhoto finds the presentation photo declared in the photo
// index and resolves it inside the mission folder. Any failure leaves the
// mission without a photo.
func (x *Extractor) presentationPhoto(folder fs.FS, name string, index *xmldoc.Document) *missions.PhotoReference {
	declared := PresentationPath(index)
	if declared == "" {
		return nil
	}

	rel := NormalizePath(declared)
	resolved, err := ResolvePath(folder, rel)
	if err != nil {
		x.log().Warnf("%s: presentation photo %q not found: %v", name, rel, err)
		return nil
	}

	ref := &missions.PhotoReference{RelativePath: rel}
	if x.Photos != nil {
		ref.ResolvedLocator = x.Photos.Register(folder, resolved)
	}
	return ref
}

// PresentationPath returns the file path of the first photo row whose type
// mentions "présentation", accents and case ignored.
func PresentationPath(index *xmldoc.Document) string {
	for _, row := range index.FindAll(photoRowTags...) {
		if !strings.Contains(Fold(row.FirstOf(photoTypeKeys...)), presentationLabel) {
			continue
		}
		if p := row.FirstOf(photoPathKeys...); p != "" {
			return p
		}
	}
	return ""
}

// NormalizePath converts Windows separators to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

// ResolvePath walks rel inside folder one segment at a time, requiring
// directories along the way and a regular file at the end. Empty and "."
// segments are skipped. It returns the fs path of the file.
func ResolvePath(folder fs.FS, rel string) (string, error) {
	var parts []string
	for _, p := range strings.Split(rel, "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", errEmptyPath
	}

	current := "."
	for i, part := range parts {
		next := path.Join(current, part)
		if part == ".." || !fs.ValidPath(next) {
			return "", fmt.Errorf("invalid path segment %q", part)
		}
		info, err := fs.Stat(folder, next)
		if err != nil {
			return "", err
		}
		last := i == len(parts)-1
		if last && !info.Mode().IsRegular() {
			return "", fmt.Errorf("%s is not a file", next)
		}
		if !last && !info.IsDir() {
			return "", fmt.Errorf("%s is not a directory", next)
		}
		current = next
	}
	return current, nil
}

// Fold lowercases s and strips combining marks, so "Présentation" and
// "PRESENTATION" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
