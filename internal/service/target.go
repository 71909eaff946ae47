package service

import (
	"fmt"

	"template-go/internal/client/command"
	"template-go/internal/model"
)

// muslCompiler is the C compiler probed when suggesting a static build.
const muslCompiler = "musl-gcc"

// TargetAdvisor explains how easily the target links fully statically.
type TargetAdvisor struct {
	runner command.Runner
}

// NewTargetAdvisor creates an advisor; runner is used to probe for musl-gcc.
func NewTargetAdvisor(runner command.Runner) *TargetAdvisor {
	return &TargetAdvisor{runner: runner}
}

// Advise returns informational messages about static linking of target.
func (a *TargetAdvisor) Advise(target model.Target) []model.Advisory {
	platform := target.Platform()
	if platform == model.Unknown {
		return advisories("Target platform unknown; static linking was not assessed.")
	}

	switch target.Libc() {
	case model.LibcNone:
		return advisories(fmt.Sprintf("Building for %s with cgo disabled. Expect a fully static binary.", platform))
	case model.LibcMusl:
		return advisories(fmt.Sprintf("Building for musl target: %s (CC=%s). Expect a fully static binary.", platform, target.CC))
	case model.LibcOther:
		return advisories(
			fmt.Sprintf("Detected cgo target: %s.", platform),
			fmt.Sprintf("Fully static linking is not supported for %s with cgo.", target.OS),
		)
	}

	out := advisories(
		fmt.Sprintf("Detected non-musl target: %s.", platform),
		"Fully static linking with glibc may be problematic.",
	)
	if target.Explicit {
		return out
	}

	if _, err := a.runner.LookPath(muslCompiler); err == nil {
		out = append(out, model.Advisory{Message: fmt.Sprintf(
			"Consider using musl for a reliably static binary:\n  CC=%s go build -ldflags '-linkmode external -extldflags \"-static\"'",
			muslCompiler)})
	} else {
		out = append(out, model.Advisory{Message: "If you need a fully static binary, disable cgo:\n  CGO_ENABLED=0 go build\n" +
			"or install musl-gcc and build with:\n  CC=musl-gcc go build -ldflags '-linkmode external -extldflags \"-static\"'"})
	}
	return out
}

func advisories(messages ...string) []model.Advisory {
	out := make([]model.Advisory, 0, len(messages)+1)
	for _, m := range messages {
		out = append(out, model.Advisory{Message: m})
	}
	return out
}
