package lloyd

import (
	"fmt"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/geometry"
)

// Report is the serialisable form of a Result.
type Report struct {
	K          int             `json:"k" yaml:"k"`
	Dimension  int             `json:"dimension" yaml:"dimension"`
	Iterations int             `json:"iterations" yaml:"iterations"`
	Cost       float64         `json:"cost" yaml:"cost"`
	Clusters   []ClusterReport `json:"clusters" yaml:"clusters"`
}

// ClusterReport describes a single cluster of a Report.
type ClusterReport struct {
	Label   int         `json:"label" yaml:"label"`
	Center  []float64   `json:"center" yaml:"center"`
	Size    int         `json:"size" yaml:"size"`
	Members []uint32    `json:"members" yaml:"members"`
	Points  [][]float64 `json:"points" yaml:"points"`
}

// Report builds the serialisable form of r.
func (r *Result) Report() *Report {
	rep := &Report{
		K:          r.K(),
		Iterations: r.Iterations,
		Cost:       r.Cost,
		Clusters:   make([]ClusterReport, 0, r.K()),
	}
	if len(r.Centers) > 0 {
		rep.Dimension = r.Centers[0].Dim()
	}

	for label, center := range r.Centers {
		members := r.members[label].ToArray()
		points := make([][]float64, 0, len(members))
		for _, p := range r.Clustering[label] {
			points = append(points, p)
		}
		rep.Clusters = append(rep.Clusters, ClusterReport{
			Label:   label,
			Center:  center,
			Size:    len(members),
			Members: members,
			Points:  points,
		})
	}

	return rep
}

// Clustering rebuilds the label -> members map from the report's points.
func (rep *Report) Clustering() map[int][]geometry.Point {
	clustering := make(map[int][]geometry.Point, len(rep.Clusters))
	for _, c := range rep.Clusters {
		if len(c.Points) == 0 {
			continue
		}
		members := make([]geometry.Point, len(c.Points))
		for i, p := range c.Points {
			members[i] = p
		}
		clustering[c.Label] = members
	}
	return clustering
}

// TotalCost recomputes the within-cluster sum of squared distances from the
// report's points. It ignores the stored Cost.
func (rep *Report) TotalCost() (float64, error) {
	return TotalCost(rep.Clustering())
}

// Encode serialises the report with c, or codec.Default if c is nil.
func (rep *Report) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("encode report with %s: %w", c.Name(), err)
	}
	return data, nil
}

// DecodeReport parses a report produced by Report.Encode.
func DecodeReport(c codec.Codec, data []byte) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	var rep Report
	if err := c.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decode report with %s: %w", c.Name(), err)
	}
	if len(rep.Clusters) != rep.K {
		return nil, fmt.Errorf("%w: report has %d clusters, want %d", ErrConfiguration, len(rep.Clusters), rep.K)
	}
	return &rep, nil
}
