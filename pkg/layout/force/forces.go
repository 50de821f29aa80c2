package force

import "math"

// jiggle returns a tiny random offset used to separate coincident nodes.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}

// applyLinks pulls or pushes each edge's endpoints toward LinkDistance.
// The correction is split by degree: the endpoint with fewer edges moves more.
func (s *Simulation) applyLinks() {
	for _, l := range s.links {
		src, tgt := &s.nodes[l.source], &s.nodes[l.target]
		x := tgt.x + tgt.vx - src.x - src.vx
		y := tgt.y + tgt.vy - src.y - src.vy
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Sqrt(x*x + y*y)
		k := (d - s.cfg.LinkDistance) / d * s.alpha * l.strength
		x *= k
		y *= k
		tgt.vx -= x * l.bias
		tgt.vy -= y * l.bias
		src.vx += x * (1 - l.bias)
		src.vy += y * (1 - l.bias)
	}
}

// applyCharge applies pairwise forces of magnitude |strength|/d² along the
// line between each pair.
func (s *Simulation) applyCharge() {
	if s.cfg.ChargeStrength == 0 {
		return
	}
	min2 := s.cfg.ChargeDistanceMin * s.cfg.ChargeDistanceMin
	for i := range s.nodes {
		a := &s.nodes[i]
		for j := i + 1; j < len(s.nodes); j++ {
			b := &s.nodes[j]
			x := b.x - a.x
			y := b.y - a.y
			if x == 0 {
				x = s.jiggle()
			}
			if y == 0 {
				y = s.jiggle()
			}
			d2 := x*x + y*y
			if d2 < min2 {
				d2 = min2
			}
			// Unit direction (x/d) times strength/d².
			k := s.cfg.ChargeStrength * s.alpha / (d2 * math.Sqrt(d2))
			a.vx += x * k
			a.vy += y * k
			b.vx -= x * k
			b.vy -= y * k
		}
	}
}

// applyCenter translates every node so the mean position moves toward
// the configured centre.
func (s *Simulation) applyCenter() {
	if s.cfg.CenterStrength == 0 || len(s.nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, p := range s.nodes {
		sx += p.x
		sy += p.y
	}
	n := float64(len(s.nodes))
	dx := (sx/n - s.cfg.Center.X) * s.cfg.CenterStrength
	dy := (sy/n - s.cfg.Center.Y) * s.cfg.CenterStrength
	for i := range s.nodes {
		s.nodes[i].x -= dx
		s.nodes[i].y -= dy
	}
}

// applyCollide separates overlapping circles. Positions are predicted one
// step ahead (x + vx) and the overlap is resolved through velocities,
// weighted so the smaller circle moves more.
func (s *Simulation) applyCollide() {
	if s.cfg.CollideStrength == 0 {
		return
	}
	for k := 0; k < s.cfg.CollideIterations; k++ {
		for i := range s.nodes {
			a := &s.nodes[i]
			if a.r <= 0 {
				continue
			}
			xi, yi := a.x+a.vx, a.y+a.vy
			ri2 := a.r * a.r
			for j := i + 1; j < len(s.nodes); j++ {
				b := &s.nodes[j]
				if b.r <= 0 {
					continue
				}
				r := a.r + b.r
				x := xi - b.x - b.vx
				y := yi - b.y - b.vy
				l := x*x + y*y
				if l >= r*r {
					continue
				}
				if x == 0 {
					x = s.jiggle()
					l += x * x
				}
				if y == 0 {
					y = s.jiggle()
					l += y * y
				}
				l = math.Sqrt(l)
				m := (r - l) / l * s.cfg.CollideStrength
				x *= m
				y *= m
				rj2 := b.r * b.r
				w := rj2 / (ri2 + rj2)
				a.vx += x * w
				a.vy += y * w
				b.vx -= x * (1 - w)
				b.vy -= y * (1 - w)
			}
		}
	}
}
