//go:build !nogl
// +build !nogl

package opengl

// bindata holds the GLSL sources by file name.
var bindata = map[string]string{
	"rope.vert": `#version 330 core

layout(location = 0) in vec2 pos;

uniform vec2 vp[2];
uniform float size;

void main() {
	gl_Position = vec4(2 * (pos - vp[0]) / (vp[1] - vp[0]) - 1, 0, 1);
	gl_PointSize = size;
}
`,
	"rope.frag": `#version 330 core

uniform vec4 color;

out vec4 frag;

void main() {
	frag = color;
}
`,
}
