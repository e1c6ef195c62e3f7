package draw

import (
	"context"
	"math/rand"
	"time"

	"github.com/debatetab/tab-system/models"
)

type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator returns a draw generator that orders teams with an
// unbiased Fisher-Yates shuffle. Pass a seeded *rand.Rand for
// reproducible output; nil seeds from the clock.
func NewRandomGenerator(rng *rand.Rand) Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomGenerator{rng: rng}
}

func (g *RandomGenerator) GetName() string {
	return "random"
}

func (g *RandomGenerator) GenerateDraw(ctx context.Context, params Params) ([]*ProposedMatch, error) {
	if len(params.Teams) < 2 {
		return nil, ErrInsufficientTeams
	}

	shuffled := make([]models.Team, len(params.Teams))
	copy(shuffled, params.Teams)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return group(shuffled, params.Format, params.AllowShortMatch)
}
