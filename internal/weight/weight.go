package weight

import (
	"math"

	"github.com/Borislavv/go-lecar/internal/history"
)

// Discount returns d such that d^capacity == floor, i.e. a regret observed
// capacity cycles after the eviction weighs floor of a fresh one.
func Discount(floor float64, capacity uint64) float64 {
	return math.Pow(floor, 1.0/float64(capacity))
}

// Engine holds the confidence in each tracker and the derived LRU selection probability.
// Not safe for concurrent use.
type Engine struct {
	rate     float64
	discount float64
	wLRU     float64
	wSRRIP   float64
	prob     float64
}

func New(rate, discount, initialLRU float64) *Engine {
	return &Engine{
		rate:     rate,
		discount: discount,
		wLRU:     initialLRU,
		wSRRIP:   1 - initialLRU,
		prob:     initialLRU,
	}
}

// Decay returns exp(-rate * d^elapsed).
func (e *Engine) Decay(elapsed uint64) float64 {
	return math.Exp(-e.rate * math.Pow(e.discount, float64(elapsed)))
}

// Update applies the regret of an eviction made by tag that was re-requested
// elapsed cycles later, then renormalizes and refreshes the probability.
//
// The decay hits the weight of the tracker that did NOT make the eviction,
// and w_SRRIP is normalized against the already normalized w_LRU, so the pair
// does not always sum to one afterwards. Both are kept as observed behavior.
func (e *Engine) Update(tag history.Policy, elapsed uint64) {
	decay := e.Decay(elapsed)
	switch tag {
	case history.LRU:
		e.wSRRIP *= decay
	case history.SRRIP:
		e.wLRU *= decay
	}

	e.wLRU = e.wLRU / (e.wLRU + e.wSRRIP)
	e.wSRRIP = e.wSRRIP / (e.wLRU + e.wSRRIP)
	e.prob = e.wLRU
}

// Prob is the probability of letting LRU choose the next victim.
func (e *Engine) Prob() float64 { return e.prob }

func (e *Engine) Weights() (lru, srrip float64) { return e.wLRU, e.wSRRIP }

func (e *Engine) Discount() float64 { return e.discount }
