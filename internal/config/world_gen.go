package config

// TerrainConfig controls chunk layout, extraction and streaming.
type TerrainConfig struct {
	Kind         string    `yaml:"kind"`
	ChunkSize    int       `yaml:"chunk_size"`
	IsoValue     float32   `yaml:"iso_value"`
	StreamRadius int       `yaml:"stream_radius"`
	EvictRadius  int       `yaml:"evict_radius"`
	Workers      int       `yaml:"workers"`
	LOD          LODConfig `yaml:"lod"`
}

// LODConfig maps ring distance to lattice resolution.
type LODConfig struct {
	Enabled       bool `yaml:"enabled"`
	MinResolution int  `yaml:"min_resolution"`
	RingsPerLevel int  `yaml:"rings_per_level"`
}

// NoiseConfig parameterises the density field. It is copied into every
// worker, so it must stay a plain value.
type NoiseConfig struct {
	Seed         int64   `yaml:"seed"`
	HeightScale  float64 `yaml:"height_scale"`
	BaseScale    float64 `yaml:"base_scale"`
	HillsScale   float64 `yaml:"hills_scale"`
	DetailScale  float64 `yaml:"detail_scale"`
	CaveScale    float64 `yaml:"cave_scale"`
	CaveStrength float64 `yaml:"cave_strength"`
	Caves        bool    `yaml:"caves"`
	Octaves      int     `yaml:"octaves"`
	Persistence  float64 `yaml:"persistence"`
	Lacunarity   float64 `yaml:"lacunarity"`
}

func DefaultTerrain() TerrainConfig {
	return TerrainConfig{
		Kind:         KindSurfaceNets,
		ChunkSize:    32,
		IsoValue:     0,
		StreamRadius: 5,
		EvictRadius:  8,
		Workers:      4,
		LOD: LODConfig{
			Enabled:       true,
			MinResolution: 8,
			RingsPerLevel: 2,
		},
	}
}

func DefaultNoise() NoiseConfig {
	return NoiseConfig{
		Seed:         1,
		HeightScale:  24,
		BaseScale:    0.01,
		HillsScale:   0.03,
		DetailScale:  0.15,
		CaveScale:    0.08,
		CaveStrength: 1,
		Caves:        true,
		Octaves:      6,
		Persistence:  0.5,
		Lacunarity:   2.0,
	}
}

// Resolution returns the lattice resolution (cells per axis) for a LOD level.
// Resolution halves per level and never drops below MinResolution; the
// chunk's world footprint is unaffected.
func (t TerrainConfig) Resolution(lod int) int {
	if !t.LOD.Enabled || lod <= 0 {
		return t.ChunkSize
	}
	r := t.ChunkSize >> min(lod, 30)
	return max(r, t.LOD.MinResolution)
}

// LODForRing returns the LOD level of a chunk on the given Chebyshev ring.
func (t TerrainConfig) LODForRing(ring int) int {
	if !t.LOD.Enabled || ring <= 0 {
		return 0
	}
	return ring / max(t.LOD.RingsPerLevel, 1)
}
