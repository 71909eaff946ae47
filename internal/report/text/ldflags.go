package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"template-go/internal/model"
)

// variables maps published keys to the linker-settable variables of the
// build info package.
var variables = map[string]string{
	model.KeyVersion:       "Version",
	model.KeyRevision:      "Revision",
	model.KeyShortRevision: "ShortRevision",
	model.KeyBranch:        "Branch",
	model.KeyDate:          "Date",
	model.KeyUser:          "User",
	model.KeyToolchain:     "Toolchain",
}

// LdflagsWriter writes "-X <pkg>.<Var>=<value>" flags.
type LdflagsWriter struct {
	pkg    string
	logger zerolog.Logger
}

// NewLdflagsWriter creates a writer targeting the variables of pkg.
func NewLdflagsWriter(pkg string, logger zerolog.Logger) *LdflagsWriter {
	return &LdflagsWriter{
		pkg:    pkg,
		logger: logger.With().Str("component", "ldflags-writer").Logger(),
	}
}

// Format implements report.ReportWriter.
func (w *LdflagsWriter) Format() string {
	return "ldflags"
}

// Write implements report.ReportWriter. The output is a single line usable
// as the value of go build -ldflags. A value the go command cannot carry is
// published as "unknown" with a warning.
func (w *LdflagsWriter) Write(meta *model.Metadata, out io.Writer) error {
	flags := make([]string, 0, len(variables))
	for _, kv := range meta.Pairs() {
		name, ok := variables[kv.Key]
		if !ok {
			continue
		}
		flag, err := quote(fmt.Sprintf("-X %s.%s=%s", w.pkg, name, kv.Value))
		if err != nil {
			w.logger.Warn().Err(err).Str("key", kv.Key).Msg("value cannot be passed to the linker, publishing unknown")
			flag = fmt.Sprintf("-X %s.%s=%s", w.pkg, name, model.Unknown)
		}
		flags = append(flags, flag)
	}

	_, err := fmt.Fprintln(out, strings.Join(flags, " "))
	return err
}

// quote protects a flag for the go command's flag splitting: quoted
// strings are taken literally and there is no escape character, so a value
// holding both quote characters cannot be passed.
func quote(flag string) (string, error) {
	name, value, _ := strings.Cut(flag, " ")
	if !strings.ContainsAny(value, " \t\n'\"") {
		return flag, nil
	}

	// -X and its argument are two words; only the argument needs quoting.
	switch {
	case strings.Contains(value, "\n"):
		return "", fmt.Errorf("value contains a newline")
	case !strings.Contains(value, "'"):
		return name + " '" + value + "'", nil
	case !strings.Contains(value, `"`):
		return name + ` "` + value + `"`, nil
	default:
		return "", fmt.Errorf("value contains both quote characters")
	}
}
