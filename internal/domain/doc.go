// Package domain contains the core model for polycheck: algebraic domains,
// expression tokens, evaluation values and statement reports.
//
// The domain is markup- and persistence-agnostic: it does not depend on XML
// parsing, YAML, or the filesystem. Infra/adapters map into/from these types.
package domain
