package routesan

import (
	"github.com/routesan/core/internal/geo"
	"github.com/routesan/core/internal/trajectory"
)

// ConfigBuilder builds a Config via chained With* setters, each
// returning a new value (copy-on-write) so intermediate builders can be
// shared or branched safely. Call Build() to validate and obtain the
// final Config.
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder starts from NewDefaultConfig().
func NewConfigBuilder() ConfigBuilder {
	return ConfigBuilder{cfg: NewDefaultConfig()}
}

func (b ConfigBuilder) WithFields(f trajectory.FieldNames) ConfigBuilder {
	b.cfg.Fields = f
	return b
}

func (b ConfigBuilder) WithUIDFields(fields ...string) ConfigBuilder {
	b.cfg.UIDFields = fields
	return b
}

func (b ConfigBuilder) WithQuad(sw, ne geo.Point) ConfigBuilder {
	b.cfg.QuadSW = sw
	b.cfg.QuadNE = ne
	return b
}

func (b ConfigBuilder) WithPlotKML(v bool) ConfigBuilder {
	b.cfg.PlotKML = v
	return b
}

func (b ConfigBuilder) WithFitExt(v float64) ConfigBuilder {
	b.cfg.FitExt = v
	return b
}

func (b ConfigBuilder) WithMapFitScale(enabled bool, scale float64) ConfigBuilder {
	b.cfg.ScaleMapFit = enabled
	b.cfg.MapFitScale = scale
	return b
}

func (b ConfigBuilder) WithNHeadingGroups(n int) ConfigBuilder {
	b.cfg.NHeadingGroups = n
	return b
}

func (b ConfigBuilder) WithMinEdgeTripPoints(n int) ConfigBuilder {
	b.cfg.MinEdgeTripPoints = n
	return b
}

func (b ConfigBuilder) WithTurnaround(maxQSize int, areaWidth, maxSpeed, headingDelta float64) ConfigBuilder {
	b.cfg.TaMaxQSize = maxQSize
	b.cfg.TaAreaWidth = areaWidth
	b.cfg.TaMaxSpeed = maxSpeed
	b.cfg.TaHeadingDelta = headingDelta
	return b
}

func (b ConfigBuilder) WithStopDetection(maxTime, minDistance, maxSpeed float64) ConfigBuilder {
	b.cfg.StopMaxTime = maxTime
	b.cfg.StopMinDistance = minDistance
	b.cfg.StopMaxSpeed = maxSpeed
	return b
}

func (b ConfigBuilder) WithDirectDistanceWindow(min, max float64) ConfigBuilder {
	b.cfg.MinDirectDistance = min
	b.cfg.MaxDirectDistance = max
	return b
}

func (b ConfigBuilder) WithManhattanDistanceWindow(min, max float64) ConfigBuilder {
	b.cfg.MinManhattanDistance = min
	b.cfg.MaxManhattanDistance = max
	return b
}

func (b ConfigBuilder) WithOutDegreeWindow(min, max int) ConfigBuilder {
	b.cfg.MinOutDegree = min
	b.cfg.MaxOutDegree = max
	return b
}

func (b ConfigBuilder) WithRandomization(direct, manhattan, outDegree float64) ConfigBuilder {
	b.cfg.RandDirect = direct
	b.cfg.RandManhattan = manhattan
	b.cfg.RandOutDegree = outDegree
	return b
}

// Build validates the accumulated Config and returns it.
func (b ConfigBuilder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}
