package imaging

import "math"

// Stats holds the population statistics of one channel plane.
type Stats struct {
	Mean float64
	Std  float64
	Max  float64
}

// Stats computes population mean, standard deviation, and maximum intensity.
// An empty plane yields all zeros.
func (p *Plane) Stats() Stats {
	n := len(p.Pix)
	if n == 0 {
		return Stats{}
	}

	var sum float64
	var max uint8
	for _, v := range p.Pix {
		sum += float64(v)
		if v > max {
			max = v
		}
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range p.Pix {
		d := float64(v) - mean
		sq += d * d
	}

	return Stats{
		Mean: mean,
		Std:  math.Sqrt(sq / float64(n)),
		Max:  float64(max),
	}
}

// Kurtosis computes the fourth standardized moment of the intensity
// distribution. A flat plane (zero variance) has no peak and is defined as 0.
func (p *Plane) Kurtosis(s Stats) float64 {
	n := len(p.Pix)
	if n == 0 || s.Std == 0 {
		return 0
	}

	var fourth float64
	for _, v := range p.Pix {
		d := float64(v) - s.Mean
		d2 := d * d
		fourth += d2 * d2
	}
	variance := s.Std * s.Std
	return fourth / float64(n) / (variance * variance)
}
