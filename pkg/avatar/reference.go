package avatar

import (
	"errors"
	"strings"
)

// DefaultAccept is the MIME filter used when launching without one.
const DefaultAccept = "image/*"

var (
	// ErrInFlight is returned when a pick is requested while another one is
	// still pending.
	ErrInFlight = errors.New("avatar: pick already in flight")
	// ErrUnsupportedType is returned when the chosen file does not match the
	// requested MIME filter.
	ErrUnsupportedType = errors.New("avatar: unsupported media type")
	// ErrPickerRequired is returned by NewLauncher when picker is nil.
	ErrPickerRequired = errors.New("avatar: picker is required")
)

// Reference is an opaque handle to a user-selected image. The form stores it
// without interpreting it.
type Reference struct {
	URI      string `json:"uri"`
	Name     string `json:"name,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

// IsSVG reports whether the reference points at SVG markup.
func (r *Reference) IsSVG() bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.MIMEType, "image/svg+xml")
}

// Clone returns a copy of r (nil stays nil).
func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// Result is the outcome of a single pick. A nil Reference with a nil Err is a
// cancellation.
type Result struct {
	Reference *Reference
	Err       error
}

// Cancelled reports whether the picker returned no image without failing.
func (r Result) Cancelled() bool {
	return r.Err == nil && r.Reference == nil
}

// Accepts reports whether mimeType satisfies an accept filter such as
// "image/*", "image/png" or "*/*". Parameters after ';' are ignored.
func Accepts(accept, mimeType string) bool {
	accept = strings.ToLower(strings.TrimSpace(accept))
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if accept == "" || accept == "*/*" || accept == "*" {
		return mimeType != ""
	}
	for _, candidate := range strings.Split(accept, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == mimeType {
			return true
		}
		if prefix, ok := strings.CutSuffix(candidate, "/*"); ok && strings.HasPrefix(mimeType, prefix+"/") {
			return true
		}
	}
	return false
}
