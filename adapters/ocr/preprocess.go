package ocr

import (
	"bytes"
	"image"
	"image/png"

	// Register decoders for the formats browsers commonly upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"qsolve/internal/errors"
)

// Preprocess normalizes an uploaded image for text recognition: greyscale,
// contrast normalization, sharpening, then a lossless PNG re-encode.
func Preprocess(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithCode(err, errors.CodeInvalidInput, "Invalid or unsupported image format")
	}

	gray := toGray(src)
	normalizeContrast(gray)
	sharpened := sharpen(gray)

	var buf bytes.Buffer
	if err := png.Encode(&buf, sharpened); err != nil {
		return nil, errors.Wrap(err, "failed to encode processed image")
	}
	return buf.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Copy(gray, bounds.Min, src, bounds, draw.Src, nil)
	return gray
}

// normalizeContrast stretches the luminance histogram so the darkest pixel
// maps to 0 and the brightest to 255.
func normalizeContrast(img *image.Gray) {
	minV, maxV := uint8(255), uint8(0)
	for _, p := range img.Pix {
		if p < minV {
			minV = p
		}
		if p > maxV {
			maxV = p
		}
	}
	if minV >= maxV {
		return // flat image, nothing to stretch
	}
	scale := 255.0 / float64(maxV-minV)
	for i, p := range img.Pix {
		img.Pix[i] = uint8(float64(p-minV)*scale + 0.5)
	}
}

// sharpen applies a 3x3 unsharp kernel. Border pixels are left untouched.
func sharpen(img *image.Gray) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	copy(out.Pix, img.Pix)

	w, h := bounds.Dx(), bounds.Dy()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := int(img.Pix[y*img.Stride+x])
			sum := 5*center -
				int(img.Pix[(y-1)*img.Stride+x]) -
				int(img.Pix[(y+1)*img.Stride+x]) -
				int(img.Pix[y*img.Stride+x-1]) -
				int(img.Pix[y*img.Stride+x+1])
			out.Pix[y*out.Stride+x] = clampByte(sum)
		}
	}
	return out
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
