package material

import "github.com/df07/go-pathtracer/pkg/core"

// Metal is a conductor mirror: a pure specular reflection lobe tinted by
// the conductor Fresnel reflectance at (Eta, K).
type Metal struct {
	Eta, K core.Spectrum
}

// NewMetal creates a conductor material from its complex index of refraction.
func NewMetal(eta, k core.Spectrum) *Metal { return &Metal{Eta: eta, K: k} }

func (m *Metal) MakeBSDF(p core.Vec3, u core.Vec2) BSDF {
	return &specularReflectionBSDF{
		fresnel: func(cosThetaO float64) core.Spectrum {
			return FresnelConductor(cosThetaO, m.Eta, m.K)
		},
	}
}
