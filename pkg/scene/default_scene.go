package scene

import (
	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/primitive"
	"github.com/df07/go-pathtracer/pkg/skylight"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewDefault builds a small self-contained scene (a ground plane, a diffuse
// sphere, a metal sphere, and an emissive sphere above them, under a
// cosine-falloff sky) useful for smoke-testing the render pipeline end to
// end without a scene description file.
func NewDefault(aspectRatio float64) *Scene {
	ground := primitive.NewGeometricPrimitive(
		geometry.NewPlane(),
		core.Identity(),
		material.NewLambertian(texture.NewChecker(1.0, core.NewSpectrum(0.9, 0.9, 0.9), core.NewSpectrum(0.2, 0.2, 0.2))),
	)

	diffuseSphere := primitive.NewGeometricPrimitive(
		geometry.NewSphere(),
		core.Translate(core.NewVec3(-1.2, 1, 0)),
		material.NewLambertian(texture.NewSolid(core.NewSpectrum(0.6, 0.2, 0.2))),
	)

	metalSphere := primitive.NewGeometricPrimitive(
		geometry.NewSphere(),
		core.Translate(core.NewVec3(1.2, 1, 0)),
		material.NewMetal(core.NewSpectrum(0.2, 0.2, 0.2), core.NewSpectrum(3, 3, 3)),
	)

	lightSphere := primitive.NewGeometricPrimitive(
		geometry.NewSphere(),
		core.Compose(core.Translate(core.NewVec3(0, 3.5, 0)), core.Scale(0.5, 0.5, 0.5)),
		material.NewEmissive(core.NewSpectrum(8, 8, 8)),
	).WithEmission(core.NewSpectrum(8, 8, 8))

	root := primitive.NewAggregate([]primitive.Primitive{ground, diffuseSphere, metalSphere, lightSphere})

	worldFromCamera := core.LookAt(
		core.NewVec3(0, 2, 6),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
	)
	cam := camera.NewPinhole(40, aspectRatio, worldFromCamera)

	sky := skylight.NewCosine(core.NewSpectrum(0.6, 0.7, 0.9))

	return New(root, cam, sky)
}
