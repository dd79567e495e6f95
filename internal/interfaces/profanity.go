package interfaces

import "context"

// ProfanityClient is the network oracle used to screen product and menu names.
// A transport failure fails the enclosing operation; there is no default-allow.
type ProfanityClient interface {
	ContainsProfanity(ctx context.Context, text string) (bool, error)
}
