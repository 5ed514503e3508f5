package organizer

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mocks/mock_policy.go -package=mocks member-organizer/pkg/organizer PolicyProvider

// ErrOrderingDisabled is returned by a provider whose configuration turns
// ordering off for a file. It ends a ChainPolicy without an ordering.
var ErrOrderingDisabled = errors.New("member ordering disabled")

// PolicyProvider looks up the member ordering tokens that apply to a file.
// ok is false when no ordering is configured.
type PolicyProvider interface {
	MemberOrdering(ctx context.Context, filePath string) (tokens []string, ok bool, err error)
}

// StaticPolicy applies the same tokens to every file. An empty list means no policy.
type StaticPolicy []string

func (p StaticPolicy) MemberOrdering(_ context.Context, _ string) ([]string, bool, error) {
	if len(p) == 0 {
		return nil, false, nil
	}
	return p, true, nil
}

// ChainPolicy asks each provider in turn and returns the first configured
// ordering. An error from a provider stops the chain, and so does
// ErrOrderingDisabled, which is reported as no ordering.
type ChainPolicy []PolicyProvider

func (c ChainPolicy) MemberOrdering(ctx context.Context, filePath string) ([]string, bool, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		tokens, ok, err := p.MemberOrdering(ctx, filePath)
		if errors.Is(err, ErrOrderingDisabled) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if ok {
			return tokens, true, nil
		}
	}
	return nil, false, nil
}
