package density

import (
	"math"
	"math/rand"
	"testing"

	"voxel-terrain/internal/config"
)

func TestPerlinZeroOnLattice(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(7)))
	for x := -3; x <= 3; x++ {
		for z := -3; z <= 3; z++ {
			if v := p.Noise3(float64(x), 2, float64(z)); v != 0 {
				t.Fatalf("Noise3(%d,2,%d) = %v, want 0", x, z, v)
			}
		}
	}
}

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(rand.New(rand.NewSource(12345)))
	hasNonZero := false
	for i := 0; i < 2000; i++ {
		x := float64(i) * 0.37
		v := p.Noise3(x, x*0.71, x*1.13)
		if v < -1.1 || v > 1.1 {
			t.Fatalf("noise out of range at %v: %v", x, v)
		}
		if v != 0 {
			hasNonZero = true
		}
	}
	if !hasNonZero {
		t.Errorf("expected non-zero noise values")
	}
}

func TestOctavesNormalised(t *testing.T) {
	o := NewOctaves(rand.New(rand.NewSource(3)), 5, 0.5, 2)
	for i := 0; i < 1000; i++ {
		v := o.Noise2(float64(i)*0.173, float64(i)*0.291)
		if v < -1.1 || v > 1.1 {
			t.Fatalf("octave sum out of range: %v", v)
		}
	}
}

func TestTerrainFieldDeterministic(t *testing.T) {
	cfg := config.DefaultNoise()
	a := NewTerrainField(cfg)
	b := NewTerrainField(cfg)
	for i := 0; i < 500; i++ {
		x, y, z := float64(i)*1.7-300, float64(i%40)-10, float64(i)*-2.3+50
		va := a.Sample(x, y, z)
		if va != a.Sample(x, y, z) {
			t.Fatalf("repeated sample differs at (%v,%v,%v)", x, y, z)
		}
		if math.Float32bits(va) != math.Float32bits(b.Sample(x, y, z)) {
			t.Fatalf("fields with equal seeds differ at (%v,%v,%v)", x, y, z)
		}
	}
}

func TestTerrainFieldSeedMatters(t *testing.T) {
	cfg := config.DefaultNoise()
	a := NewTerrainField(cfg)
	cfg.Seed++
	b := NewTerrainField(cfg)
	for i := 0; i < 100; i++ {
		x, z := float64(i)*13.1, float64(i)*7.9
		if a.Height(x, z) != b.Height(x, z) {
			return
		}
	}
	t.Fatalf("different seeds produced identical heights")
}

func TestTerrainFieldHeightGradient(t *testing.T) {
	cfg := config.DefaultNoise()
	cfg.Caves = false
	f := NewTerrainField(cfg)

	h := f.Height(10, 20)
	if h < -0.1*cfg.HeightScale || h > 1.35*cfg.HeightScale {
		t.Fatalf("height %v outside expected band", h)
	}
	// without caves density falls by exactly one per unit of height
	d0 := f.Sample(10, 3, 20)
	d1 := f.Sample(10, 4, 20)
	if diff := d0 - d1; math.Abs(float64(diff)-1) > 1e-4 {
		t.Fatalf("density slope = %v, want 1", diff)
	}
	if f.Sample(10, h-1, 20) <= 0 || f.Sample(10, h+1, 20) >= 0 {
		t.Fatalf("surface not at height %v", h)
	}
}

func TestFlatField(t *testing.T) {
	f := FlatField{Height: 2}
	if f.Sample(100, 2, -5) != 0 {
		t.Fatalf("flat field should be zero at its height")
	}
	if f.Sample(0, 0, 0) != 2 || f.Sample(0, 5, 0) != -3 {
		t.Fatalf("flat field slope wrong")
	}
}

func TestCavesOnlyRemoveMaterial(t *testing.T) {
	cfg := config.DefaultNoise()
	cfg.CaveStrength = 3
	carved := NewTerrainField(cfg)
	cfg.Caves = false
	solid := NewTerrainField(cfg)

	removed := false
	for i := 0; i < 1000; i++ {
		x, y, z := float64(i)*0.93-400, float64(i%60)-20, float64(i)*1.31+75
		with, without := carved.Sample(x, y, z), solid.Sample(x, y, z)
		if with > without+1e-5 {
			t.Fatalf("caves added material at (%v,%v,%v): %v > %v", x, y, z, with, without)
		}
		if with < without {
			removed = true
		}
	}
	if !removed {
		t.Fatalf("caves never removed material")
	}
}
