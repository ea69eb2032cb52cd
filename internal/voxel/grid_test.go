package voxel

import "testing"

func TestBounds(t *testing.T) {
	blocks := []int32{
		3, -2, 7, 0,
		-1, 4, 7, 1,
		0, 0, 9, 2,
	}
	minX, minY, minZ, maxX, maxY, maxZ := Bounds(blocks)
	if minX != -1 || minY != -2 || minZ != 7 {
		t.Fatalf("min = (%d,%d,%d), want (-1,-2,7)", minX, minY, minZ)
	}
	if maxX != 3 || maxY != 4 || maxZ != 9 {
		t.Fatalf("max = (%d,%d,%d), want (3,4,9)", maxX, maxY, maxZ)
	}
}

func TestGridLookups(t *testing.T) {
	g := Build([]int32{
		0, 0, 0, 5,
		2, 1, 0, 7,
	})

	if got := g.TypeAt(0, 0, 0); got != 5 {
		t.Fatalf("TypeAt(0,0,0) = %d, want 5", got)
	}
	if got := g.TypeAt(2, 1, 0); got != 7 {
		t.Fatalf("TypeAt(2,1,0) = %d, want 7", got)
	}
	if got := g.TypeAt(1, 0, 0); got != -1 {
		t.Fatalf("TypeAt(1,0,0) = %d, want -1 for empty cell", got)
	}
	if !g.Occupied(0, 0, 0) || g.Occupied(1, 1, 0) {
		t.Fatal("Occupied disagrees with inserted cells")
	}
}

func TestGridPaddingCoversNeighborLookups(t *testing.T) {
	// A single voxel: every ±1 neighbor lookup must stay in bounds and read
	// empty, including the corners of the padded box.
	g := Build([]int32{4, 4, 4, 1})
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if g.Occupied(4+dx, 4+dy, 4+dz) {
					t.Fatalf("padding cell (%d,%d,%d) reads occupied", 4+dx, 4+dy, 4+dz)
				}
			}
		}
	}
}

func TestGridLastWriteWins(t *testing.T) {
	g := Build([]int32{
		1, 1, 1, 3,
		1, 1, 1, 8,
	})
	if got := g.TypeAt(1, 1, 1); got != 8 {
		t.Fatalf("TypeAt = %d, want 8 (last write)", got)
	}
}

func TestGridNegativeCoordinates(t *testing.T) {
	g := Build([]int32{
		-5, -5, -5, 2,
		-3, -5, -5, 4,
	})
	x, y, z := g.Min()
	if x != -5 || y != -5 || z != -5 {
		t.Fatalf("min = (%d,%d,%d), want (-5,-5,-5)", x, y, z)
	}
	sx, sy, sz := g.Size()
	if sx != 3 || sy != 1 || sz != 1 {
		t.Fatalf("size = (%d,%d,%d), want (3,1,1)", sx, sy, sz)
	}
	if got := g.TypeAt(-4, -5, -5); got != -1 {
		t.Fatalf("TypeAt(-4,-5,-5) = %d, want -1", got)
	}
}
