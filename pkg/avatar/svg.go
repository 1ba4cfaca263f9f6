package avatar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxSVGBytes caps how much markup is read when inlining an SVG avatar.
const maxSVGBytes = 256 << 10

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// SanitizeSVG strips everything but drawing elements and presentation
// attributes from SVG markup so it can be inlined into HTML.
func SanitizeSVG(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

// InlineSVG reads a local SVG avatar and returns sanitised markup.
func InlineSVG(ref *Reference) (string, error) {
	if !ref.IsSVG() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeOf(ref))
	}
	path, ok := LocalPath(ref)
	if !ok {
		return "", errors.New("avatar: svg reference is not a local file")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("avatar: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSVGBytes))
	if err != nil {
		return "", fmt.Errorf("avatar: read %s: %w", path, err)
	}
	return SanitizeSVG(string(data)), nil
}

func mimeOf(ref *Reference) string {
	if ref == nil {
		return "<nil>"
	}
	return ref.MIMEType
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "clipPath",
		)

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"stroke-linecap", "stroke-linejoin", "opacity", "transform",
			).OnElements(el)
		}
		policy.AllowAttrs("fill", "transform", "opacity").OnElements("g")
		policy.AllowAttrs("id").OnElements("clipPath", "defs")

		svgPolicy = policy
	})
	return svgPolicy
}
