package scene

// Texture holds CPU-side pixel data for a 2D image.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
}

// CubeFace indexes the six faces in GL order: +X, -X, +Y, -Y, +Z, -Z.
type CubeFace int

const (
	CubePosX CubeFace = iota
	CubeNegX
	CubePosY
	CubeNegY
	CubePosZ
	CubeNegZ
)

// CubeFaceNames are the conventional file names of the six faces.
var CubeFaceNames = [6]string{"px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"}

// CubeTexture is an environment map filled in two phases: it can be bound to
// materials immediately and becomes Ready once its faces arrive.
//
// GLID is set by the OpenGL backend after upload.
type CubeTexture struct {
	Name  string
	Faces [6]*Texture
	GLID  uint32

	ready bool
	// revision increments each time faces are replaced so backends can
	// notice a reload.
	revision int
}

func NewCubeTexture(name string) *CubeTexture {
	return &CubeTexture{Name: name}
}

// SetFaces installs the decoded faces and marks the texture ready.
func (c *CubeTexture) SetFaces(faces [6]*Texture) {
	c.Faces = faces
	c.ready = true
	c.revision++
}

func (c *CubeTexture) Ready() bool {
	return c.ready
}

func (c *CubeTexture) Revision() int {
	return c.revision
}

// Size is the edge length of the (square) faces, or 0 before loading.
func (c *CubeTexture) Size() int {
	if !c.ready || c.Faces[0] == nil {
		return 0
	}
	return c.Faces[0].Width
}
