package share

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"whatfeeling/internal/logging"
)

// ErrNothingToShare is returned when the journey has no specific emotions.
var ErrNothingToShare = errors.New("no emotions selected to share")

// ErrUnavailable is returned by a sharer that cannot run on this platform.
var ErrUnavailable = errors.New("share target unavailable")

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// clipboardUnsupported reports whether the platform has no clipboard tool.
var clipboardUnsupported = func() bool { return clipboard.Unsupported }

// Method names how an artifact left the application.
type Method string

const (
	MethodClipboard Method = "clipboard"
	MethodDownload  Method = "download"
)

// Artifact is a rendered card plus its caption.
type Artifact struct {
	Caption  string
	Filename string
	PNG      []byte
}

// Outcome reports where an artifact went.
type Outcome struct {
	Method Method
	Path   string
}

// Message is the status line shown to the user.
func (o Outcome) Message() string {
	switch o.Method {
	case MethodClipboard:
		if o.Path != "" {
			return "Copied your feelings to the clipboard; card saved to " + o.Path
		}
		return "Copied your feelings to the clipboard"
	case MethodDownload:
		return "Saved your card to " + o.Path
	default:
		return ""
	}
}

// NewArtifact renders the card for bubbles. now names the file.
func NewArtifact(bubbles []Bubble, now time.Time) (*Artifact, error) {
	if len(bubbles) == 0 {
		return nil, ErrNothingToShare
	}
	timer := logging.StartTimer(logging.CategoryShare, "render card")
	data, err := Render(bubbles)
	timer.Stop()
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Caption:  Caption(bubbles),
		Filename: Filename(now),
		PNG:      data,
	}, nil
}

// Caption is the text that accompanies a card: a heading and one line
// per emotion, each led by a heart in its color.
func Caption(bubbles []Bubble) string {
	if len(bubbles) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("This is how I feel right now:")
	for _, b := range bubbles {
		sb.WriteString("\n")
		sb.WriteString(Heart(b.Color))
		sb.WriteString(" ")
		sb.WriteString(b.Name)
	}
	return sb.String()
}

// Heart returns the heart emoji for a color token, case-insensitively.
// Unknown tokens get a white heart.
func Heart(token string) string {
	switch strings.ToLower(token) {
	case "red":
		return "❤️"
	case "orange":
		return "🧡"
	case "yellow":
		return "💛"
	case "green":
		return "💚"
	case "blue":
		return "💙"
	case "purple":
		return "💜"
	case "pink":
		return "🩷"
	case "gray":
		return "🩶"
	default:
		return "🤍"
	}
}

// Filename is the download name for a card rendered at now.
func Filename(now time.Time) string {
	return "whatfeeling-" + now.Format("20060102-150405") + ".png"
}

// Sharer hands an artifact to some destination.
type Sharer interface {
	Share(ctx context.Context, a *Artifact) (Outcome, error)
}

// ClipboardSharer copies the caption to the system clipboard. With Dir
// set it first writes the card there and copies its path below the
// caption.
type ClipboardSharer struct {
	Dir string
}

func (s ClipboardSharer) Share(ctx context.Context, a *Artifact) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if clipboardUnsupported() {
		return Outcome{}, ErrUnavailable
	}

	text := a.Caption
	var path string
	if s.Dir != "" {
		saved, err := DownloadSharer{Dir: s.Dir}.Share(ctx, a)
		if err != nil {
			return Outcome{}, err
		}
		path = saved.Path
		text += "\n\n" + path
	}

	if err := clipboardWriteAll(text); err != nil {
		return Outcome{}, fmt.Errorf("clipboard write failed: %w", err)
	}
	logging.Share("caption copied to clipboard")
	return Outcome{Method: MethodClipboard, Path: path}, nil
}

// DownloadSharer writes the PNG into Dir.
type DownloadSharer struct {
	Dir string
}

func (s DownloadSharer) Share(ctx context.Context, a *Artifact) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Outcome{}, fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.PNG, 0644); err != nil {
		return Outcome{}, fmt.Errorf("failed to write card: %w", err)
	}
	logging.Share("card written to %s (%d bytes)", path, len(a.PNG))
	return Outcome{Method: MethodDownload, Path: path}, nil
}

// Fallback tries Primary and falls back to Secondary on any error.
type Fallback struct {
	Primary   Sharer
	Secondary Sharer
}

func (f Fallback) Share(ctx context.Context, a *Artifact) (Outcome, error) {
	out, err := f.Primary.Share(ctx, a)
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return Outcome{}, ctx.Err()
	}
	logging.ShareWarn("primary share failed, falling back: %v", err)
	return f.Secondary.Share(ctx, a)
}
