package meshing

// Face directions in their fixed order. The order is chosen so that
// opposite(d) == d^1 and the occlusion bit for face d is 1<<d.
const (
	DirNegX = iota
	DirPosX
	DirNegY
	DirPosY
	DirNegZ
	DirPosZ

	DirCount = 6
)

// dirOffsets maps a direction to its unit neighbor offset.
var dirOffsets = [DirCount][3]int32{
	{-1, 0, 0},
	{+1, 0, 0},
	{0, -1, 0},
	{0, +1, 0},
	{0, 0, -1},
	{0, 0, +1},
}

// opposite returns the direction pointing back at d.
func opposite(d int) int {
	return d ^ 1
}

// dirFromNormal maps a rounded normal to a direction index. It returns false
// when the vector is not a single-axis unit vector; such faces belong to
// diagonal or custom geometry and cannot be axis-culled.
func dirFromNormal(dx, dy, dz int32) (int, bool) {
	if abs32(dx)+abs32(dy)+abs32(dz) != 1 {
		return 0, false
	}
	switch {
	case dx == -1:
		return DirNegX, true
	case dx == +1:
		return DirPosX, true
	case dy == -1:
		return DirNegY, true
	case dy == +1:
		return DirPosY, true
	case dz == -1:
		return DirNegZ, true
	default:
		return DirPosZ, true
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
