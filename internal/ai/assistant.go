// Package ai defines the text-generation boundary used by the cover-letter
// composer. Providers live in subpackages or double-duty search clients.
package ai

import "context"

// Generator produces text for a free-form prompt in one blocking round-trip.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
