package voxel

// Grid is a dense voxel-type lookup covering one chunk's axis-aligned
// bounding box plus a one cell padding ring on every side. The padding
// guarantees that any ±1 neighbor lookup from an in-box cell stays inside
// the backing array, so hot-path lookups carry no bounds checks.
//
// Cell values: 0 = empty, v = voxel type index + 1.
//
// A grid is built fresh for every chunk build and discarded afterwards.
type Grid struct {
	minX, minY, minZ int32
	sizeX            int // unpadded box dimensions
	sizeY            int
	sizeZ            int
	strideY          int
	strideZ          int
	cells            []int32
}

// Bounds computes the per-axis min/max of a flat (x,y,z,type) quadruple list
// in one pass. It must not be called with an empty list.
func Bounds(blocks []int32) (minX, minY, minZ, maxX, maxY, maxZ int32) {
	minX, minY, minZ = blocks[0], blocks[1], blocks[2]
	maxX, maxY, maxZ = minX, minY, minZ
	for i := 4; i+3 < len(blocks); i += 4 {
		x, y, z := blocks[i], blocks[i+1], blocks[i+2]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
		if z < minZ {
			minZ = z
		}
		if z > maxZ {
			maxZ = z
		}
	}
	return
}

// Build constructs the padded grid for a flat (x,y,z,type) quadruple list and
// inserts every instance. Two instances at the same coordinate are not an
// error; the last write wins. The list must contain at least one quadruple —
// callers short-circuit empty chunks before grid construction.
func Build(blocks []int32) *Grid {
	minX, minY, minZ, maxX, maxY, maxZ := Bounds(blocks)

	g := &Grid{
		minX:  minX,
		minY:  minY,
		minZ:  minZ,
		sizeX: int(maxX-minX) + 1,
		sizeY: int(maxY-minY) + 1,
		sizeZ: int(maxZ-minZ) + 1,
	}
	// Row-major with X fastest, then Y, then Z; +2 per axis for the padding.
	g.strideY = g.sizeX + 2
	g.strideZ = g.strideY * (g.sizeY + 2)
	g.cells = make([]int32, g.strideZ*(g.sizeZ+2))

	for i := 0; i+3 < len(blocks); i += 4 {
		g.cells[g.index(blocks[i], blocks[i+1], blocks[i+2])] = blocks[i+3] + 1
	}
	return g
}

// index maps world coordinates into the padded backing array.
func (g *Grid) index(x, y, z int32) int {
	lx := int(x-g.minX) + 1
	ly := int(y-g.minY) + 1
	lz := int(z-g.minZ) + 1
	return lx + ly*g.strideY + lz*g.strideZ
}

// At returns the cell value at world coordinates (x,y,z). The coordinates
// must lie within the padded box, which holds for every chunk cell and every
// ±1 neighbor of one.
func (g *Grid) At(x, y, z int32) int32 {
	return g.cells[g.index(x, y, z)]
}

// TypeAt returns the voxel type index at (x,y,z), or -1 for an empty cell.
func (g *Grid) TypeAt(x, y, z int32) int32 {
	return g.At(x, y, z) - 1
}

// Occupied reports whether the cell at (x,y,z) holds a voxel.
func (g *Grid) Occupied(x, y, z int32) bool {
	return g.At(x, y, z) != 0
}

// Min returns the unpadded minimum corner of the bounding box.
func (g *Grid) Min() (x, y, z int32) {
	return g.minX, g.minY, g.minZ
}

// Size returns the unpadded bounding box dimensions.
func (g *Grid) Size() (x, y, z int) {
	return g.sizeX, g.sizeY, g.sizeZ
}
