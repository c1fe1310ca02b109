package viewshot

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// ErrEmptyImage is returned when there is nothing to write.
var ErrEmptyImage = errors.New("empty image")

// Image holds PNG encoded screenshot data.
type Image []byte

// Save writes the image to filename, replacing any existing file.
func (img Image) Save(filename string) error {
	if len(img) == 0 {
		return ErrEmptyImage
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if _, err = file.Write(img); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// Dimensions returns the pixel size of the image.
func (img Image) Dimensions() (width, height int, err error) {
	if len(img) == 0 {
		return 0, 0, ErrEmptyImage
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}
