package opengl

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"logo-scene/scene"
)

var errCubeNotReady = errors.New("cube texture has no faces yet")

// cubeUpload remembers which revision of a CubeTexture is on the GPU.
type cubeUpload struct {
	id       uint32
	revision int
	maxLod   float32
}

// uploadCube uploads the six faces of cube as a mipmapped GL cube map and
// stores the texture name in cube.GLID. An existing GL texture is reused.
func uploadCube(cube *scene.CubeTexture, id uint32) (cubeUpload, error) {
	if !cube.Ready() {
		return cubeUpload{}, errCubeNotReady
	}
	for i, face := range cube.Faces {
		if face == nil || len(face.Pixels) < face.Width*face.Height*4 || face.Width == 0 {
			return cubeUpload{}, fmt.Errorf("cube texture %q face %d has no pixel data", cube.Name, i)
		}
	}

	if id == 0 {
		gl.GenTextures(1, &id)
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	for i, face := range cube.Faces {
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i),
			0,
			gl.RGBA,
			int32(face.Width),
			int32(face.Height),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			unsafe.Pointer(&face.Pixels[0]),
		)
	}
	gl.GenerateMipmap(gl.TEXTURE_CUBE_MAP)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	cube.GLID = id
	return cubeUpload{
		id:       id,
		revision: cube.Revision(),
		maxLod:   float32(bits.Len(uint(cube.Size())) - 1),
	}, nil
}

func deleteCube(cube *scene.CubeTexture, up cubeUpload) {
	if up.id != 0 {
		gl.DeleteTextures(1, &up.id)
	}
	if cube != nil {
		cube.GLID = 0
	}
}
