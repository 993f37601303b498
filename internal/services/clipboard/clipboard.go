// Package clipboard puts snapshot text on the system clipboard behind a
// narrow interface, keeping commands decoupled from the platform binding.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies text to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service is the production Copier backed by github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy places text on the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ Copier = (*Service)(nil)
