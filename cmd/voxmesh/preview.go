package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"voxmesh/internal/voxel"
	"voxmesh/pkg/meshio"
)

const previewScale = 8

// writePreview renders a top-down view of the chunk, one pixel per column
// colored by the topmost voxel's type, upscaled for readability.
func writePreview(dir, srcPath string, doc *meshio.ChunkDoc) error {
	if len(doc.Blocks) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	minX, _, minZ, maxX, _, maxZ := voxel.Bounds(doc.Blocks)
	w := int(maxX-minX) + 1
	h := int(maxZ-minZ) + 1

	// Topmost occupied y per column, stored +1 so zero means empty.
	top := make([]int32, w*h)
	topType := make([]int32, w*h)
	for i := 0; i+3 < len(doc.Blocks); i += 4 {
		x, y, z, t := doc.Blocks[i], doc.Blocks[i+1], doc.Blocks[i+2], doc.Blocks[i+3]
		cell := int(z-minZ)*w + int(x-minX)
		if top[cell] == 0 || y+1 > top[cell] {
			top[cell] = y + 1
			topType[cell] = t
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for cz := 0; cz < h; cz++ {
		for cx := 0; cx < w; cx++ {
			cell := cz*w + cx
			if top[cell] == 0 {
				continue
			}
			img.SetRGBA(cx, cz, typeColor(topType[cell]))
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w*previewScale, h*previewScale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	out, err := os.Create(filepath.Join(dir, fmt.Sprintf("%s.png", base)))
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, scaled)
}

// typeColor maps a type index onto a stable, distinguishable color.
func typeColor(t int32) color.RGBA {
	n := uint32(t)
	return color.RGBA{
		R: uint8(64 + (n*97)%160),
		G: uint8(64 + (n*57)%160),
		B: uint8(64 + (n*29)%160),
		A: 255,
	}
}
