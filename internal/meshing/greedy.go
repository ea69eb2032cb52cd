package meshing

import (
	"sort"

	"voxmesh/internal/palette"
	"voxmesh/internal/voxel"
)

// layerCell is one visible unit face inside a layer's 2D plane. a is the row
// axis, b the column axis of the plane spanned perpendicular to the normal.
type layerCell struct {
	a, b int32
}

// faceKey groups visible faces that may merge into one quad run.
type faceKey struct {
	material uint32
	dir      int
}

// mergeGreedy computes the "solid" category mesh by collecting visible unit
// faces straight from the grid, grouping them by (direction, material) and
// layer, and greedy-merging each layer's faces into maximal rectangles.
//
// Emission order is deterministic: materials ascending, then direction index,
// then layer ascending, then row-major scan order — so repeated builds of the
// same chunk produce identical buffers, and all quads of one material stay
// contiguous for group coalescing.
func mergeGreedy(pal *palette.Palette, g *voxel.Grid, byType map[int][]blockRef, origin [3]int32) *meshWriter {
	w := newMeshWriter(palette.CategorySolid)

	types := make([]int, 0, len(byType))
	for ti := range byType {
		types = append(types, ti)
	}
	sort.Ints(types)

	// Step 1: visible faces keyed by (direction, material), split per layer.
	faces := make(map[faceKey]map[int32][]layerCell)
	for _, ti := range types {
		entry := pal.Entry(ti)
		if entry == nil {
			continue
		}
		// Material comes from the first geometry variant; a solid entry
		// registered without geometry falls back to material 0.
		var material uint32
		if len(entry.Variants) > 0 {
			material = entry.Variants[0].MaterialIndex
		}
		for _, ref := range byType[ti] {
			for dir := 0; dir < DirCount; dir++ {
				if !faceVisible(g, pal, ref.x, ref.y, ref.z, dir) {
					continue
				}
				layer, a, b := planeCoords(dir, ref.x, ref.y, ref.z)
				key := faceKey{material: material, dir: dir}
				byLayer := faces[key]
				if byLayer == nil {
					byLayer = make(map[int32][]layerCell)
					faces[key] = byLayer
				}
				byLayer[layer] = append(byLayer[layer], layerCell{a: a, b: b})
			}
		}
	}
	if len(faces) == 0 {
		return w
	}

	materials := make([]uint32, 0, len(faces))
	seen := make(map[uint32]bool)
	for key := range faces {
		if !seen[key.material] {
			seen[key.material] = true
			materials = append(materials, key.material)
		}
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })

	for _, material := range materials {
		for dir := 0; dir < DirCount; dir++ {
			byLayer := faces[faceKey{material: material, dir: dir}]
			if byLayer == nil {
				continue
			}
			layers := make([]int32, 0, len(byLayer))
			for l := range byLayer {
				layers = append(layers, l)
			}
			sort.Slice(layers, func(i, j int) bool { return layers[i] < layers[j] })
			for _, layer := range layers {
				mergeLayer(w, dir, material, layer, byLayer[layer], origin)
			}
		}
	}
	return w
}

// planeCoords splits a voxel coordinate into the layer coordinate along the
// face's normal axis and the (row, column) coordinates inside the layer plane.
func planeCoords(dir int, x, y, z int32) (layer, a, b int32) {
	switch dir / 2 {
	case 0:
		return x, y, z
	case 1:
		return y, x, z
	default:
		return z, x, y
	}
}

// mergeLayer runs the 2D greedy rectangle merge over one layer's faces and
// emits the resulting quads. The occupancy grid covers the faces' bounding
// rectangle; the scan is row-major with width extended before height, and
// consumed rectangles are cleared so every face is emitted exactly once.
func mergeLayer(w *meshWriter, dir int, material uint32, layer int32, cells []layerCell, origin [3]int32) {
	minA, minB := cells[0].a, cells[0].b
	maxA, maxB := minA, minB
	for _, c := range cells[1:] {
		if c.a < minA {
			minA = c.a
		}
		if c.a > maxA {
			maxA = c.a
		}
		if c.b < minB {
			minB = c.b
		}
		if c.b > maxB {
			maxB = c.b
		}
	}
	rows := int(maxA-minA) + 1
	cols := int(maxB-minB) + 1

	occupied := make([]bool, rows*cols)
	for _, c := range cells {
		occupied[int(c.a-minA)*cols+int(c.b-minB)] = true
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if !occupied[row*cols+col] {
				continue
			}
			width := 1
			for col+width < cols && occupied[row*cols+col+width] {
				width++
			}
			height := 1
		grow:
			for row+height < rows {
				for k := 0; k < width; k++ {
					if !occupied[(row+height)*cols+col+k] {
						break grow
					}
				}
				height++
			}
			for r := row; r < row+height; r++ {
				for c := col; c < col+width; c++ {
					occupied[r*cols+c] = false
				}
			}
			emitQuad(w, dir, material, layer, minA+int32(row), minB+int32(col), int32(width), int32(height), origin)
		}
	}
}

// quadWinding holds the (row, column) corner steps producing an
// outward-facing counter-clockwise quad; entries are scaled by the rectangle
// height/width at emission. Directions +X, -Y and +Z share one winding, their
// opposites use the reverse.
var quadWinding = [2][4][2]int32{
	{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, // +X, -Y, +Z
	{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, // -X, +Y, -Z
}

// windingFor selects the corner order for a direction.
func windingFor(dir int) *[4][2]int32 {
	switch dir {
	case DirPosX, DirNegY, DirPosZ:
		return &quadWinding[0]
	default:
		return &quadWinding[1]
	}
}

// emitQuad converts one merged rectangle into 4 corner vertices and two
// triangles (0-1-2, 0-2-3). UVs scale with the rectangle size so tiled
// textures repeat across the merged face.
func emitQuad(w *meshWriter, dir int, material uint32, layer, a0, b0, width, height int32, origin [3]int32) {
	off := dirOffsets[dir]
	nx := int8(off[0] * NormalScale)
	ny := int8(off[1] * NormalScale)
	nz := int8(off[2] * NormalScale)

	// Positive faces sit on the far side of the cell.
	plane := layer
	if dir&1 == 1 {
		plane++
	}

	var planeLocal, aLocal, bLocal float32
	switch dir / 2 {
	case 0:
		planeLocal = float32(plane - origin[0])
		aLocal = float32(a0 - origin[1])
		bLocal = float32(b0 - origin[2])
	case 1:
		planeLocal = float32(plane - origin[1])
		aLocal = float32(a0 - origin[0])
		bLocal = float32(b0 - origin[2])
	default:
		planeLocal = float32(plane - origin[2])
		aLocal = float32(a0 - origin[0])
		bLocal = float32(b0 - origin[1])
	}

	base := uint32(w.vertexCount)
	winding := windingFor(dir)
	for _, corner := range winding {
		da := float32(corner[0] * height)
		db := float32(corner[1] * width)
		var x, y, z float32
		switch dir / 2 {
		case 0:
			x, y, z = planeLocal, aLocal+da, bLocal+db
		case 1:
			x, y, z = aLocal+da, planeLocal, bLocal+db
		default:
			x, y, z = aLocal+da, bLocal+db, planeLocal
		}
		w.appendRawVertex(x, y, z, nx, ny, nz, db, da)
	}
	w.appendIndices([]uint32{0, 1, 2, 0, 2, 3}, base, material)
}
