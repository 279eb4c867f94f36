// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader transforms the model mesh by a single model matrix.
//
//go:embed surface.vert
var SurfaceVertexShader string

// InstanceVertexShader transforms a reference primitive by a per-instance
// matrix read from attribute locations 2-5.
//
//go:embed instance.vert
var InstanceVertexShader string

// PhongFragmentShader shades surfaces and instances with Blinn-Phong.
//
//go:embed phong.frag
var PhongFragmentShader string

// LineVertexShader draws unlit line geometry.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader outputs a flat colour.
//
//go:embed line.frag
var LineFragmentShader string
