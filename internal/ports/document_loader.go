package ports

import "github.com/aalvaropc/polycheck/internal/domain"

// DocumentLoader loads a markup document as a stream of traversal events.
type DocumentLoader interface {
	LoadDocument(path string) (domain.Document, error)
}
