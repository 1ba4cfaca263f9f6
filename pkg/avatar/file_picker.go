package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// sniffLen matches the amount of data http.DetectContentType considers.
const sniffLen = 512

// PathPrompt asks the user for a file path. An empty answer cancels the pick.
type PathPrompt func(ctx context.Context) (string, error)

// FilePicker resolves avatars from local files chosen through a PathPrompt.
type FilePicker struct {
	prompt  PathPrompt
	homeDir func() (string, error)
}

// NewFilePicker wires a file-system picker around prompt.
func NewFilePicker(prompt PathPrompt) *FilePicker {
	return &FilePicker{
		prompt:  prompt,
		homeDir: os.UserHomeDir,
	}
}

// Pick implements Picker.
func (p *FilePicker) Pick(ctx context.Context, accept string) (*Reference, error) {
	if p == nil || p.prompt == nil {
		return nil, errors.New("avatar: file picker prompt is nil")
	}
	raw, err := p.prompt(ctx)
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	return p.resolve(raw, accept)
}

func (p *FilePicker) resolve(raw, accept string) (*Reference, error) {
	path, err := p.expand(raw)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("avatar: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("avatar: %s is a directory", path)
	}

	mimeType, err := detectMIME(path)
	if err != nil {
		return nil, err
	}
	if !Accepts(accept, mimeType) {
		return nil, fmt.Errorf("%w: %s (want %s)", ErrUnsupportedType, mimeType, accept)
	}

	return &Reference{
		URI:      (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(),
		Name:     filepath.Base(path),
		MIMEType: mimeType,
	}, nil
}

func (p *FilePicker) expand(raw string) (string, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := p.homeDir()
		if err != nil {
			return "", fmt.Errorf("avatar: resolve home: %w", err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("avatar: resolve %s: %w", raw, err)
	}
	return abs, nil
}

func detectMIME(path string) (string, error) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return stripParams(byExt), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("avatar: open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("avatar: read %s: %w", path, err)
	}
	return stripParams(http.DetectContentType(buf[:n])), nil
}

func stripParams(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(mimeType)
}

// LocalPath returns the file-system path behind a file:// reference.
func LocalPath(ref *Reference) (string, bool) {
	if ref == nil {
		return "", false
	}
	u, err := url.Parse(ref.URI)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
