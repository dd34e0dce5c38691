// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader transforms patch vertices and forwards light-space positions.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades terrain by height and slope with sun, shadow and fog.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// DepthVertexShader projects patch vertices into light space for the shadow pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes depth only.
//
//go:embed depth.frag
var DepthFragmentShader string

// LineVertexShader draws colored debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader outputs the interpolated line color.
//
//go:embed line.frag
var LineFragmentShader string
