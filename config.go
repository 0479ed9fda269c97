package collide

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gekko3d/gekko-collide/quadtree"
	"github.com/gekko3d/gekko-collide/sat"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// PhysicsWorld holds the tuning shared by every resolver in a scene.
type PhysicsWorld struct {
	Gravity mgl32.Vec3 `yaml:"gravity"`

	// Movement resolver.
	CorrectionThreshold float32          `yaml:"correction_threshold"`
	GroundBand          float32          `yaml:"ground_band"`
	SnapEpsilon         float32          `yaml:"snap_epsilon"`
	ContactMerge        sat.ContactMerge `yaml:"contact_merge"`

	// Impulse resolver.
	Restitution       float32 `yaml:"restitution"`
	Slop              float32 `yaml:"slop"`
	CorrectionPercent float32 `yaml:"correction_percent"`
	DynamicCellSize   float32 `yaml:"dynamic_cell_size"` // 0 tests every pair

	// Terrain index.
	QuadMaxElements int `yaml:"quad_max_elements"`
	QuadMaxDepth    int `yaml:"quad_max_depth"`

	MaxDt time.Duration `yaml:"max_dt"`
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:             mgl32.Vec3{0, 0, -9.81},
		CorrectionThreshold: 0.001,
		GroundBand:          0.3,
		SnapEpsilon:         0.01,
		ContactMerge:        sat.MergeDeepest,
		Restitution:         0.6,
		Slop:                0.01,
		CorrectionPercent:   0.8,
		DynamicCellSize:     0,
		QuadMaxElements:     quadtree.DefaultMaxElements,
		QuadMaxDepth:        quadtree.DefaultMaxDepth,
		MaxDt:               time.Second,
	}
}

var ErrInvalidConfig = errors.New("invalid physics config")

func (p *PhysicsWorld) Validate() error {
	switch {
	case p.CorrectionThreshold < 0:
		return fmt.Errorf("%w: correction_threshold %v < 0", ErrInvalidConfig, p.CorrectionThreshold)
	case p.GroundBand <= 0:
		return fmt.Errorf("%w: ground_band %v <= 0", ErrInvalidConfig, p.GroundBand)
	case p.SnapEpsilon < 0 || p.SnapEpsilon >= p.GroundBand:
		return fmt.Errorf("%w: snap_epsilon %v outside [0, ground_band)", ErrInvalidConfig, p.SnapEpsilon)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("%w: restitution %v outside [0, 1]", ErrInvalidConfig, p.Restitution)
	case p.Slop < 0:
		return fmt.Errorf("%w: slop %v < 0", ErrInvalidConfig, p.Slop)
	case p.CorrectionPercent < 0 || p.CorrectionPercent > 1:
		return fmt.Errorf("%w: correction_percent %v outside [0, 1]", ErrInvalidConfig, p.CorrectionPercent)
	case p.DynamicCellSize < 0:
		return fmt.Errorf("%w: dynamic_cell_size %v < 0", ErrInvalidConfig, p.DynamicCellSize)
	case p.QuadMaxElements < 1:
		return fmt.Errorf("%w: quad_max_elements %d < 1", ErrInvalidConfig, p.QuadMaxElements)
	case p.QuadMaxDepth < 0:
		return fmt.Errorf("%w: quad_max_depth %d < 0", ErrInvalidConfig, p.QuadMaxDepth)
	case p.MaxDt <= 0:
		return fmt.Errorf("%w: max_dt %v <= 0", ErrInvalidConfig, p.MaxDt)
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (*PhysicsWorld, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read physics config: %w", err)
	}
	p := NewPhysicsWorld()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse physics config %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// SaveConfig writes p as YAML, creating the parent directory if needed.
func SaveConfig(path string, p *PhysicsWorld) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode physics config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
