package screen

import (
	"errors"
	"image"
	"image/draw"
	"math"
	"sort"
)

// Match is the best-scoring placement of a template inside a larger image.
type Match struct {
	// Rect is the matched area in source coordinates.
	Rect image.Rectangle
	// Score is the zero-mean normalized cross-correlation in [-1, 1].
	Score float64
}

// Center returns the midpoint of the match, rounded the same way a
// half-width integer offset would be.
func (m Match) Center() image.Point {
	return image.Point{
		X: m.Rect.Min.X + m.Rect.Dx()/2,
		Y: m.Rect.Min.Y + m.Rect.Dy()/2,
	}
}

var (
	// ErrEmptyImage is returned when the source or the template has no pixels.
	ErrEmptyImage = errors.New("image has no pixels")
	// ErrTemplateTooLarge is returned when the template does not fit inside the source.
	ErrTemplateTooLarge = errors.New("template is larger than the search image")
)

const (
	// minCoarseSide is the smallest template side worth searching at a
	// reduced scale; below it the coarse pass loses too much detail.
	minCoarseSide = 12
	coarseFactor  = 4
	// candidates is the minimum number of coarse peaks refined.
	candidates = 8
	// Every further coarse peak within coarseTolerance of the strongest is
	// refined too, up to maxCandidates. Lookalikes that differ only in
	// detail lost by downscaling tie on the coarse pass.
	coarseTolerance = 0.05
	maxCandidates   = 256
)

// ToGray converts img to 8-bit grayscale with origin at (0, 0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// BestMatch finds the placement of tmpl inside src with the highest
// normalized correlation. It always returns the best location, however
// poor; callers decide what score is good enough.
//
// Small templates are scored at every placement. Larger ones are searched on
// a downscaled copy first; the strongest coarse peaks, plus every peak close
// to the coarse maximum, are then refined at full resolution. A placement
// is only missed if it falls well below the coarse maximum after
// downscaling.
func BestMatch(src, tmpl *image.Gray) (Match, error) {
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()
	if sw == 0 || sh == 0 || tw == 0 || th == 0 {
		return Match{}, ErrEmptyImage
	}
	if tw > sw || th > sh {
		return Match{}, ErrTemplateTooLarge
	}

	full := newCorrelator(src, tmpl)

	if min(tw, th)/coarseFactor < minCoarseSide {
		p, score := full.search(image.Rect(0, 0, sw-tw+1, sh-th+1))
		return full.match(p, score), nil
	}

	coarse := newCorrelator(downscale(src, coarseFactor), downscale(tmpl, coarseFactor))
	cw, ch := coarse.src.Rect.Dx()-coarse.tw+1, coarse.src.Rect.Dy()-coarse.th+1
	top := coarse.topCandidates(image.Rect(0, 0, cw, ch), candidates, coarseTolerance)

	limit := image.Rect(0, 0, sw-tw+1, sh-th+1)
	best, bestScore := image.Point{}, math.Inf(-1)
	for _, c := range top {
		origin := c.Mul(coarseFactor)
		window := image.Rect(origin.X-coarseFactor*2, origin.Y-coarseFactor*2,
			origin.X+coarseFactor*2+1, origin.Y+coarseFactor*2+1).Intersect(limit)
		if window.Empty() {
			continue
		}
		p, score := full.search(window)
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return full.match(best, bestScore), nil
}

// correlator holds the precomputed template statistics and the summed-area
// tables used to normalize each window in constant time.
type correlator struct {
	src    *image.Gray
	tw, th int
	tdev   []float64 // template pixels minus the template mean
	tnorm  float64   // sum of tdev squared
	sum    []float64 // summed-area table of src, (w+1)*(h+1)
	sq     []float64 // summed-area table of src squared
}

func newCorrelator(src, tmpl *image.Gray) *correlator {
	tw, th := tmpl.Rect.Dx(), tmpl.Rect.Dy()
	n := float64(tw * th)

	var mean float64
	for y := 0; y < th; y++ {
		row := tmpl.Pix[y*tmpl.Stride : y*tmpl.Stride+tw]
		for _, v := range row {
			mean += float64(v)
		}
	}
	mean /= n

	tdev := make([]float64, tw*th)
	var tnorm float64
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			d := float64(tmpl.Pix[y*tmpl.Stride+x]) - mean
			tdev[y*tw+x] = d
			tnorm += d * d
		}
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	sum := make([]float64, (w+1)*(h+1))
	sq := make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum, rowSq float64
		for x := 0; x < w; x++ {
			v := float64(src.Pix[y*src.Stride+x])
			rowSum += v
			rowSq += v * v
			i := (y+1)*(w+1) + x + 1
			sum[i] = sum[i-(w+1)] + rowSum
			sq[i] = sq[i-(w+1)] + rowSq
		}
	}

	return &correlator{src: src, tw: tw, th: th, tdev: tdev, tnorm: tnorm, sum: sum, sq: sq}
}

func (c *correlator) boxSum(table []float64, x, y int) float64 {
	stride := c.src.Rect.Dx() + 1
	x1, y1 := x+c.tw, y+c.th
	return table[y1*stride+x1] - table[y*stride+x1] - table[y1*stride+x] + table[y*stride+x]
}

// score computes the normalized correlation for the window whose top-left
// corner is (x, y). Flat windows or flat templates score zero.
func (c *correlator) score(x, y int) float64 {
	n := float64(c.tw * c.th)
	s := c.boxSum(c.sum, x, y)
	variance := c.boxSum(c.sq, x, y) - s*s/n
	denom := math.Sqrt(c.tnorm * variance)
	if denom < 1e-9 {
		return 0
	}

	var cross float64
	for ty := 0; ty < c.th; ty++ {
		row := c.src.Pix[(y+ty)*c.src.Stride+x : (y+ty)*c.src.Stride+x+c.tw]
		dev := c.tdev[ty*c.tw : ty*c.tw+c.tw]
		for tx, v := range row {
			cross += dev[tx] * float64(v)
		}
	}
	return cross / denom
}

// search scans every top-left position in area and returns the best one.
func (c *correlator) search(area image.Rectangle) (image.Point, float64) {
	best, bestScore := area.Min, math.Inf(-1)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if s := c.score(x, y); s > bestScore {
				best, bestScore = image.Pt(x, y), s
			}
		}
	}
	return best, bestScore
}

type scoredPoint struct {
	p     image.Point
	score float64
}

// topCandidates returns at least k positions with the highest scores, plus
// any further position scoring within tolerance of the best, keeping them at
// least one template apart so a single bright blob does not use up every
// slot.
func (c *correlator) topCandidates(area image.Rectangle, k int, tolerance float64) []image.Point {
	var all []scoredPoint
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			all = append(all, scoredPoint{p: image.Pt(x, y), score: c.score(x, y)})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	var out []image.Point
	for _, sp := range all {
		if len(out) >= maxCandidates || (len(out) >= k && sp.score < all[0].score-tolerance) {
			break
		}
		tooClose := false
		for _, p := range out {
			if abs(p.X-sp.p.X) < c.tw && abs(p.Y-sp.p.Y) < c.th {
				tooClose = true
				break
			}
		}
		if !tooClose {
			out = append(out, sp.p)
		}
	}
	return out
}

func (c *correlator) match(p image.Point, score float64) Match {
	return Match{
		Rect:  image.Rect(p.X, p.Y, p.X+c.tw, p.Y+c.th),
		Score: score,
	}
}

// downscale box-averages g by factor. Trailing pixels that do not fill a
// whole block are dropped.
func downscale(g *image.Gray, factor int) *image.Gray {
	w, h := g.Rect.Dx()/factor, g.Rect.Dy()/factor
	out := image.NewGray(image.Rect(0, 0, w, h))
	area := factor * factor
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var total int
			for dy := 0; dy < factor; dy++ {
				row := g.Pix[(y*factor+dy)*g.Stride+x*factor:]
				for dx := 0; dx < factor; dx++ {
					total += int(row[dx])
				}
			}
			out.Pix[y*out.Stride+x] = uint8(total / area)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
