package meshing

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/palette"
	"voxmesh/internal/voxel"
)

// flushEpsilon is the tolerance used to decide whether a vertex lies on a
// voxel boundary plane.
const flushEpsilon = 0.01

// triangleVisible is the geometry-driven visibility test used by the naive
// merger. It inspects the normal of the triangle's first vertex: faces whose
// rounded normal is not a single-axis unit vector are always visible. Axis
// faces are culled only when they sit flush on the matching boundary plane
// (full-size at 0/1, half-height at ±0.5) and the neighbor cell behind that
// plane occludes through the face that touches this voxel.
func triangleVisible(g *voxel.Grid, pal *palette.Palette, v *palette.Variant, i0 uint32, px, py, pz int32) bool {
	ni := int(i0) * 3
	if ni+2 >= len(v.Normals) {
		return true
	}
	n := mgl32.Vec3{v.Normals[ni], v.Normals[ni+1], v.Normals[ni+2]}
	dx := int32(math.Round(float64(n.X())))
	dy := int32(math.Round(float64(n.Y())))
	dz := int32(math.Round(float64(n.Z())))

	dir, ok := dirFromNormal(dx, dy, dz)
	if !ok {
		return true
	}
	if !flushWithBoundary(v, i0, dir) {
		return true
	}

	off := dirOffsets[dir]
	neighbor := g.TypeAt(px+off[0], py+off[1], pz+off[2])
	if neighbor < 0 {
		return true
	}
	entry := pal.Entry(int(neighbor))
	if entry == nil {
		return true
	}
	// The neighbor's face pointing back at this voxel.
	return !entry.Occludes(opposite(dir))
}

// flushWithBoundary reports whether the triangle's first vertex lies on the
// boundary plane matching the face direction. Positive faces test against the
// 1.0 and 0.5 planes, negative faces against 0.0 and -0.5.
func flushWithBoundary(v *palette.Variant, i0 uint32, dir int) bool {
	pi := int(i0) * 3
	if pi+2 >= len(v.Positions) {
		return false
	}
	var p float32
	switch dir {
	case DirNegX, DirPosX:
		p = v.Positions[pi]
	case DirNegY, DirPosY:
		p = v.Positions[pi+1]
	default:
		p = v.Positions[pi+2]
	}
	if dir&1 == 1 { // positive direction
		return near(p, 1) || near(p, 0.5)
	}
	return near(p, 0) || near(p, -0.5)
}

func near(v, target float32) bool {
	d := v - target
	return d > -flushEpsilon && d < flushEpsilon
}

// faceVisible is the grid-driven visibility test used by the greedy mesher.
// Solid voxels present full-face geometry on every side, so no flush check is
// needed: the face is visible unless the neighbor cell occludes through its
// facing side.
func faceVisible(g *voxel.Grid, pal *palette.Palette, x, y, z int32, dir int) bool {
	off := dirOffsets[dir]
	neighbor := g.TypeAt(x+off[0], y+off[1], z+off[2])
	if neighbor < 0 {
		return true
	}
	entry := pal.Entry(int(neighbor))
	if entry == nil {
		return true
	}
	return !entry.Occludes(opposite(dir))
}
