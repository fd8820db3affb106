package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/bundleplan/internal/ui/output"
	"go.trai.ch/bundleplan/internal/ui/style"
)

// Attribute keys of a policy diagnostic. The pretty handler renders the module
// and policy inline and leaves the rest as key=value fields.
const (
	KeyModule   = "module"
	KeyPolicy   = "policy"
	KeyDeclared = "declared"
	KeyReason   = "reason"
)

// PrettyHandler is a slog.Handler that writes one colored line per record:
//
//	! quill: policy downgraded → bundle declared=external-global reason=runtime-global-unconfirmed
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// line is a record split into the parts the handler styles separately.
type line struct {
	module string
	policy string
	fields []string
}

func (l *line) add(group string, attr slog.Attr) {
	if group == "" {
		switch attr.Key {
		case KeyModule:
			l.module = attr.Value.String()
			return
		case KeyPolicy:
			l.policy = attr.Value.String()
			return
		}
	}
	l.fields = append(l.fields, formatAttr(group, attr))
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var l line
	for _, attr := range h.attrs {
		l.add(h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		l.add(h.group, attr)
		return true
	})

	icon, color := levelStyle(r.Level)

	var head strings.Builder
	if icon != "" {
		head.WriteString(icon + " ")
	}
	if l.module != "" {
		head.WriteString(l.module + ": ")
	}
	head.WriteString(r.Message)

	var sb strings.Builder
	sb.WriteString(h.paint(head.String(), color))
	if l.policy != "" {
		sb.WriteString(" " + h.paint(style.Arrow+" "+l.policy, string(style.PolicyColor(l.policy))))
	}
	if len(l.fields) > 0 {
		sb.WriteString(" " + h.paint(strings.Join(l.fields, " "), string(style.Slate)))
	}
	sb.WriteString("\n")

	_, err := h.out.WriteString(sb.String())
	return err
}

func (h *PrettyHandler) paint(s, hex string) string {
	return h.out.String(s).Foreground(termenv.RGBColor(hex)).String()
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, string(style.Red)
	case level >= slog.LevelWarn:
		return style.Warning, string(style.Yellow)
	default:
		return "", string(style.Slate)
	}
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
