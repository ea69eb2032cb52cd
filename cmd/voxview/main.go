// Command voxview renders an exported mesh JSON document with a simple
// orbiting camera, for eyeballing build output.
package main

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/logx"
	"voxmesh/internal/meshing"
	"voxmesh/pkg/meshio"
)

const (
	windowWidth  = 1024
	windowHeight = 768
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) != 2 {
		logx.Fatal("usage: voxview <mesh.json>")
	}
	doc, err := meshio.LoadResult(os.Args[1])
	if err != nil {
		logx.Fatal("%v", err)
	}

	if err := glfw.Init(); err != nil {
		logx.Fatal("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxview", nil, nil)
	if err != nil {
		logx.Fatal("create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		logx.Fatal("gl init: %v", err)
	}

	program, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		logx.Fatal("%v", err)
	}
	defer gl.DeleteProgram(program)

	meshes := make([]*glMesh, 0, len(doc.Meshes))
	for i := range doc.Meshes {
		m := uploadMesh(&doc.Meshes[i])
		if m != nil {
			meshes = append(meshes, m)
		}
	}
	if len(meshes) == 0 {
		logx.Fatal("document contains no renderable meshes")
	}
	logx.Info("loaded %d meshes from %s", len(meshes), os.Args[1])

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.08, 0.09, 0.11, 1.0)

	gl.UseProgram(program)
	mvpLoc := gl.GetUniformLocation(program, gl.Str("mvp\x00"))

	center, radius := boundingSphere(doc)
	projection := mgl32.Perspective(mgl32.DegToRad(60), float32(windowWidth)/windowHeight, 0.1, radius*10+10)

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		angle := float32(glfw.GetTime() * 0.5)
		dist := radius*2.5 + 1
		eye := center.Add(mgl32.Vec3{
			dist * float32(math.Cos(float64(angle))),
			radius + 1,
			dist * float32(math.Sin(float64(angle))),
		})
		view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
		mvp := projection.Mul4(view)
		gl.UniformMatrix4fv(mvpLoc, 1, false, &mvp[0])

		for _, m := range meshes {
			gl.BindVertexArray(m.vao)
			gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}

	for _, m := range meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
}

type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// uploadMesh de-quantizes one mesh document into an interleaved
// position+normal buffer and uploads it.
func uploadMesh(m *meshio.MeshDoc) *glMesh {
	if m.VertexCount == 0 || len(m.Indices) == 0 {
		return nil
	}

	interleaved := make([]float32, 0, m.VertexCount*6)
	for v := 0; v < m.VertexCount; v++ {
		interleaved = append(interleaved,
			meshing.DecodePosition(m.Positions[v*3]),
			meshing.DecodePosition(m.Positions[v*3+1]),
			meshing.DecodePosition(m.Positions[v*3+2]),
			meshing.DecodeNormal(m.Normals[v*3]),
			meshing.DecodeNormal(m.Normals[v*3+1]),
			meshing.DecodeNormal(m.Normals[v*3+2]),
		)
	}

	out := &glMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &out.vao)
	gl.BindVertexArray(out.vao)

	gl.GenBuffers(1, &out.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, out.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.STATIC_DRAW)

	gl.GenBuffers(1, &out.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, out.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 24, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 24, gl.PtrOffset(12))

	gl.BindVertexArray(0)
	return out
}

// boundingSphere estimates a camera target and orbit radius from the
// quantized positions across all meshes.
func boundingSphere(doc *meshio.ResultDoc) (mgl32.Vec3, float32) {
	min := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := min.Mul(-1)
	found := false
	for i := range doc.Meshes {
		m := &doc.Meshes[i]
		for v := 0; v < m.VertexCount; v++ {
			p := mgl32.Vec3{
				meshing.DecodePosition(m.Positions[v*3]),
				meshing.DecodePosition(m.Positions[v*3+1]),
				meshing.DecodePosition(m.Positions[v*3+2]),
			}
			for a := 0; a < 3; a++ {
				if p[a] < min[a] {
					min[a] = p[a]
				}
				if p[a] > max[a] {
					max[a] = p[a]
				}
			}
			found = true
		}
	}
	if !found {
		return mgl32.Vec3{}, 1
	}
	center := min.Add(max).Mul(0.5)
	return center, max.Sub(center).Len() + 1
}

var vertexSrc = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
uniform mat4 mvp;
out vec3 vNormal;
void main() {
	vNormal = normal;
	gl_Position = mvp * vec4(position, 1.0);
}` + "\x00"

var fragmentSrc = `#version 410 core
in vec3 vNormal;
out vec4 fragColor;
void main() {
	vec3 lightDir = normalize(vec3(0.4, 0.8, 0.5));
	float diff = max(dot(normalize(vNormal), lightDir), 0.0);
	vec3 base = vec3(0.55, 0.65, 0.75);
	fragColor = vec4(base * (0.25 + 0.75 * diff), 1.0);
}` + "\x00"

// newProgram compiles shaders and links them into a program.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	f, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("program link error: %s", string(log))
	}

	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader compile error: %s", string(log))
	}
	return shader, nil
}
