package style

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// UserMessage turns an error into a short headline for the terminal. The
// full error still goes to the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		base := ""
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}

		switch oe.Kind {
		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "xmldoc"):
				return "Document not found" + suffix(base)
			case strings.HasPrefix(oe.Op, "reportstore"):
				return "Report not found"
			case strings.HasPrefix(oe.Op, "workspacefinder"):
				return "Workspace not found (tip: run `polycheck init`)"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			if line := lineOf(oe, err); line != "" {
				return "Invalid config at " + nonEmpty(base, "polycheck.yaml") + " line " + line
			}
			return "Invalid config" + suffix(base)

		case domain.KindStructural:
			msg := "Malformed document"
			if strings.HasPrefix(oe.Op, "usecase.validate") {
				msg = "Malformed expression"
			}
			if line := lineOf(oe, err); line != "" {
				return msg + " at " + nonEmpty(base, "input") + " line " + line
			}
			return msg + suffix(base)

		case domain.KindIO:
			return "Cannot read or write" + suffix(base)
		}
	}

	if errors.Is(err, domain.ErrEmptyContext) || errors.Is(err, domain.ErrUnclosedScope) {
		return "Malformed document"
	}
	return "Unexpected error (see logs)"
}

func lineOf(oe *domain.OpError, err error) string {
	if oe.Line > 0 {
		return strconv.Itoa(oe.Line)
	}
	if m := reLine.FindStringSubmatch(err.Error()); len(m) == 2 {
		return m[1]
	}
	return ""
}

func suffix(base string) string {
	if base == "" {
		return ""
	}
	return " (" + base + ")"
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
