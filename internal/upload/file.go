package upload

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is a recording selected by the user.
type File struct {
	Name        string
	Size        int64
	ContentType string // empty means application/octet-stream
	Open        func() (io.ReadCloser, error)
}

// recordingTypes maps common recording extensions to their media types. The
// system MIME tables often lack the less common audio containers.
var recordingTypes = map[string]string{
	".aac":  "audio/aac",
	".aiff": "audio/aiff",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".weba": "audio/webm",
	".webm": "video/webm",
}

// RecordingExtensions lists the extensions offered by the file picker.
func RecordingExtensions() []string {
	exts := make([]string, 0, len(recordingTypes))
	for ext := range recordingTypes {
		exts = append(exts, ext)
	}
	return exts
}

// ContentTypeFor guesses the media type of a recording from its name.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := recordingTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// FileFromPath stats path and returns a File that opens it lazily.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read recording: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	return File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: ContentTypeFor(path),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
