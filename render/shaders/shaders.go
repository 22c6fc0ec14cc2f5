package shaders

import (
	_ "embed"
)

//go:embed atmosphere.vert.wgsl
var AtmosphereVertexWGSL string

//go:embed atmosphere.frag.wgsl
var AtmosphereFragmentWGSL string

//go:embed solar_flare.vert.wgsl
var SolarFlareVertexWGSL string

//go:embed solar_flare.frag.wgsl
var SolarFlareFragmentWGSL string

//go:embed comet_tail.vert.wgsl
var CometTailVertexWGSL string

//go:embed comet_tail.frag.wgsl
var CometTailFragmentWGSL string

// BasicWGSL lights solid meshes from the sun at the origin.
//
//go:embed basic.wgsl
var BasicWGSL string
