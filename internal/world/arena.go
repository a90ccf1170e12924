package world

import (
	"goalline/server/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

const arenaMaterialFriction = 0.4

var arenaMaterial = physics.Material{Friction: arenaMaterialFriction, Restitution: WallRestitution}

// BuildArena constructs the authoritative static geometry table of §4.2
// against world once, at match creation.
func BuildArena(w physics.World) {
	// Ground.
	w.AddStaticBody(physics.StaticBodyDesc{
		Translation: mgl64.Vec3{0, -0.25, 0},
		Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{15, 0.25, 10}},
		Material:    arenaMaterial,
	})

	// Back walls (full width, at z = +-(10+1)).
	for _, z := range []float64{11, -11} {
		w.AddStaticBody(physics.StaticBodyDesc{
			Translation: mgl64.Vec3{0, WallHeight / 2, z},
			Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{15, WallHeight / 2, 0.5}},
			Material:    arenaMaterial,
		})
	}

	// Side walls, broken by goal gaps: four segments at x = +-16, z = +-6.5,
	// each 3.5 m deep.
	for _, x := range []float64{16, -16} {
		for _, z := range []float64{6.5, -6.5} {
			w.AddStaticBody(physics.StaticBodyDesc{
				Translation: mgl64.Vec3{x, WallHeight / 2, z},
				Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{1, WallHeight / 2, 1.75}},
				Material:    arenaMaterial,
			})
		}
	}

	// Goal back walls at x = +-17.2.
	for _, x := range []float64{17.2, -17.2} {
		w.AddStaticBody(physics.StaticBodyDesc{
			Translation: mgl64.Vec3{x, GoalHeight / 2, 0},
			Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{0.2, GoalHeight / 2, GoalHalfZ}},
			Material:    arenaMaterial,
		})
	}

	// Vertical goal posts (cylinders) at (+-10.8, +-2.5).
	for _, x := range []float64{10.8, -10.8} {
		for _, z := range []float64{2.5, -2.5} {
			w.AddStaticBody(physics.StaticBodyDesc{
				Translation: mgl64.Vec3{x, GoalHeight / 2, z},
				Cylinder:    &physics.CylinderShape{Radius: 0.1, HalfHeight: GoalHeight / 2},
				Material:    arenaMaterial,
			})
		}
	}

	// Crossbars (rotated cylinders) at (+-10.8, 0), y = 4.
	for _, x := range []float64{10.8, -10.8} {
		w.AddStaticBody(physics.StaticBodyDesc{
			Translation:   mgl64.Vec3{x, GoalHeight, 0},
			RotationEuler: mgl64.Vec3{0, 0, 90},
			Cylinder:      &physics.CylinderShape{Radius: 0.1, HalfHeight: GoalHalfZ},
			Material:      arenaMaterial,
		})
	}

	// Goal net side walls at x in [+-10.8, +-17.2], z = +-2.5, sealing the
	// net sides.
	netDepth := (GoalBackX + 0.2 - GoalLineX) / 2
	netCenterX := GoalLineX + netDepth
	for _, xSign := range []float64{1, -1} {
		for _, z := range []float64{2.5, -2.5} {
			w.AddStaticBody(physics.StaticBodyDesc{
				Translation: mgl64.Vec3{xSign * netCenterX, GoalHeight / 2, z},
				Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{netDepth, GoalHeight / 2, 0.1}},
				Material:    arenaMaterial,
			})
		}
	}

	// Ceiling.
	w.AddStaticBody(physics.StaticBodyDesc{
		Translation: mgl64.Vec3{0, WallHeight, 0},
		Cuboid:      &physics.CuboidShape{HalfExtents: mgl64.Vec3{15, 0.25, 10}},
		Material:    arenaMaterial,
	})
}
