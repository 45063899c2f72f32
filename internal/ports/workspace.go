package ports

import "github.com/aalvaropc/polycheck/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
