package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// VideoWriter appends frames to an MJPEG AVI file.
type VideoWriter struct {
	aw     mjpeg.AviWriter
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

// NewVideoWriter creates the AVI file at path.
func NewVideoWriter(path string, width, height, fps int) (*VideoWriter, error) {
	if fps < 1 {
		fps = 1
	}
	aw, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("creating video %s: %w", path, err)
	}
	return &VideoWriter{aw: aw, opts: jpeg.Options{Quality: 90}}, nil
}

// AddFrame encodes img as JPEG and appends it.
func (v *VideoWriter) AddFrame(img image.Image) error {
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &v.opts); err != nil {
		return fmt.Errorf("encoding frame %d: %w", v.frames, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("adding frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written.
func (v *VideoWriter) Frames() int {
	return v.frames
}

// Close finalises the AVI index and closes the file.
func (v *VideoWriter) Close() error {
	return v.aw.Close()
}
