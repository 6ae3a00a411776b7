// Package phone canonicalizes phone numbers to E.164 before they reach the
// store. Numbers that do not parse or are not valid for the configured region
// are rejected at the boundary.
package phone

import (
	"github.com/nyaruka/phonenumbers"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
)

const DefaultRegion = "RU"

type Normalizer struct {
	region string
}

func NewNormalizer(region string) *Normalizer {
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// Normalize parses raw against the default region and returns the E.164
// representation.
func (n *Normalizer) Normalize(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", apierr.Invalid("invalid phone number format: %q", raw)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", apierr.Invalid("invalid phone number format: %q", raw)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// NormalizeAll validates the whole batch, failing on the first bad number so
// nothing is persisted from a partially valid payload.
func (n *Normalizer) NormalizeAll(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		e164, err := n.Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e164)
	}
	return out, nil
}
