package media

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/hopebridge/hopebridge/pkg/model"
)

const (
	singleSuffix = "_url"
	listSuffix   = "_urls"
)

// ErrInvalidSlot is returned for slot keys or assignments that can't be used.
var ErrInvalidSlot = errors.New("invalid media slot")

var keyRegexp = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)+$`)

// Key is a parsed slot name.
//
//	programs_education_image_url -> Path: [programs education], Field: image
//	about_gallery_images_urls    -> Path: [about gallery], Field: images, Multiple
type Key struct {
	Name     string
	Path     []string
	Field    string
	Kind     model.MediaKind
	Multiple bool
}

// ParseKey splits a slot name into its nested location in the media document.
func ParseKey(name string) (Key, error) {
	if !keyRegexp.MatchString(name) {
		return Key{}, errors.Wrapf(ErrInvalidSlot, "%q: use lower case words separated by underscores", name)
	}

	key := Key{Name: name}

	var trimmed string
	switch {
	case strings.HasSuffix(name, listSuffix):
		trimmed = strings.TrimSuffix(name, listSuffix)
		key.Multiple = true
	case strings.HasSuffix(name, singleSuffix):
		trimmed = strings.TrimSuffix(name, singleSuffix)
	default:
		return Key{}, errors.Wrapf(ErrInvalidSlot, "%q: must end with %q or %q", name, singleSuffix, listSuffix)
	}

	parts := strings.Split(trimmed, "_")
	if len(parts) < 2 {
		return Key{}, errors.Wrapf(ErrInvalidSlot, "%q: needs a section and a field", name)
	}

	key.Path = parts[:len(parts)-1]
	key.Field = parts[len(parts)-1]

	key.Kind = model.MediaImage
	if strings.Contains(key.Field, "video") {
		key.Kind = model.MediaVideo
	}

	return key, nil
}

// Location returns the dotted path of the value in the media document.
func (k Key) Location() string {
	return strings.Join(append(append([]string{}, k.Path...), k.Field), ".")
}
