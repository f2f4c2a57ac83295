package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"logo-scene/scene"
)

var (
	// ErrFaceCount is returned when a cube map is not given exactly six faces.
	ErrFaceCount = errors.New("cube map needs exactly 6 faces")
	// ErrFaceSize is returned when cube faces are not square or differ in size.
	ErrFaceSize = errors.New("cube map faces must be square and equal in size")
)

// DecodeTexture decodes a PNG or JPEG stream into an RGBA8 texture.
func DecodeTexture(name string, r io.Reader) (*scene.Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &scene.Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// LoadTexture reads an image file from disk.
func LoadTexture(path string) (*scene.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	return DecodeTexture(path, f)
}

// decodeCubeFaces loads the faces concurrently. Every face that fails is
// reported in the joined error.
func decodeCubeFaces(ctx context.Context, dir string, faces []string) ([6]*scene.Texture, error) {
	var out [6]*scene.Texture
	if len(faces) != 6 {
		return out, fmt.Errorf("%w: got %d", ErrFaceCount, len(faces))
	}

	var errs [6]error
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range faces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			tex, err := LoadTexture(filepath.Join(dir, name))
			if err != nil {
				errs[i] = err
				return err
			}
			out[i] = tex
			return nil
		})
	}
	if g.Wait() != nil {
		return out, errors.Join(errs[:]...)
	}

	if err := validateFaces(out); err != nil {
		return out, err
	}
	return out, nil
}

func validateFaces(faces [6]*scene.Texture) error {
	size := faces[0].Width
	for i, f := range faces {
		if f.Width != f.Height || f.Width != size {
			return fmt.Errorf("%w: face %s is %dx%d, want %dx%d",
				ErrFaceSize, scene.CubeFaceNames[i], f.Width, f.Height, size, size)
		}
	}
	return nil
}
