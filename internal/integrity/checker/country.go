package checker

import "context"

// WhitelistSetName is the externally managed set of low-risk country codes.
const WhitelistSetName = "whitelisted_countries"

// Whitelist is the set-membership query the country checker needs.
type Whitelist interface {
	IsMember(ctx context.Context, set, member string) (bool, error)
}

// Country vetoes callers from countries outside the whitelist. An absent
// country code carries no opinion and passes.
type Country struct {
	whitelist Whitelist
}

// NewCountry constructs the country checker over the whitelist set.
func NewCountry(whitelist Whitelist) *Country {
	return &Country{whitelist: whitelist}
}

func (c *Country) Evaluate(ctx context.Context, in Input) (Outcome, error) {
	if in.Country == "" {
		return Pass(), nil
	}

	member, err := c.whitelist.IsMember(ctx, WhitelistSetName, in.Country)
	if err != nil {
		return Outcome{}, err
	}
	if !member {
		return Fail(ReasonCountry), nil
	}
	return Pass(), nil
}
