package generation

import (
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/noble-hunt/AXLE-sub000/internal/errors"
)

// GeneratorVersion is stamped into every seed. Regeneration of a seed minted
// by an older generator is still attempted, but the version makes drift
// observable.
const GeneratorVersion = "v1"

// Clock abstracts time for deterministic tests.
type Clock func() time.Time

// makeSeed mints a fresh seed for a request: a random token, the full input
// snapshot, and a structural hash of the inputs for cheap equality checks.
func makeSeed(req Request, sctx SeedContext, now Clock) (Seed, error) {
	hash, err := hashstructure.Hash(req, hashstructure.FormatV2, nil)
	if err != nil {
		return Seed{}, errors.Wrap(err, "hash seed inputs")
	}
	if sctx.Date == "" {
		sctx.Date = now().UTC().Format(time.DateOnly)
	}
	return Seed{
		Token:            uuid.NewString(),
		GeneratorVersion: GeneratorVersion,
		Inputs:           req,
		InputsHash:       hash,
		Context:          sctx,
		Choices:          map[string]string{},
		CreatedAt:        now().UTC(),
	}, nil
}
