package renderer

import (
	"fmt"
	"strings"

	"github.com/ivlev/telop/internal/telop"
)

// DrawTextStyle controls the look of burned-in captions.
type DrawTextStyle struct {
	FontSize  int
	FontColor string // ffmpeg colour, e.g. "white" or "#FFFFFF"
	BoxColor  string
	BoxAlpha  float64
	Margin    int
	Easing    string // name accepted by EasingByName; unknown names fade linearly
}

// GenerateDrawTextFilter builds a chain of ffmpeg drawtext filters that
// reproduces lookup and fade behaviour at render time: each entry is
// enabled on [start, end) unless an earlier entry already covers t, and its
// alpha follows the fade-in and fade-out ratios.
func GenerateDrawTextFilter(set telop.Set, effectSec float64, style DrawTextStyle) string {
	if len(set) == 0 {
		return ""
	}

	filters := make([]string, 0, len(set))
	for i, e := range set {
		if e.Duration <= 0 {
			continue
		}
		filters = append(filters, fmt.Sprintf(
			"drawtext=text='%s':fontsize=%d:fontcolor=%s:x=(w-text_w)/2:y=h-text_h-%d:box=1:boxcolor=%s@%.2f:boxborderw=6:enable='%s':alpha='%s'",
			escapeDrawText(e.Text),
			style.FontSize,
			style.FontColor,
			style.Margin,
			style.BoxColor,
			style.BoxAlpha,
			buildEnableExpression(set[:i], e),
			buildAlphaExpression(e, effectSec, style.Easing),
		))
	}
	return strings.Join(filters, ",")
}

// buildEnableExpression is true inside e's window and outside every earlier window
func buildEnableExpression(earlier telop.Set, e telop.Entry) string {
	expr := windowExpr(e)
	for _, prev := range earlier {
		if prev.Duration <= 0 || prev.End() <= e.Start || prev.Start >= e.End() {
			continue
		}
		expr += fmt.Sprintf("*not(%s)", windowExpr(prev))
	}
	return expr
}

func windowExpr(e telop.Entry) string {
	return fmt.Sprintf("gte(t,%.6f)*lt(t,%.6f)", e.Start, e.End())
}

// buildAlphaExpression mirrors Opacity: ease(in) * ease(1 - out)
func buildAlphaExpression(e telop.Entry, effectSec float64, easing string) string {
	if effectSec <= 0 {
		return "1"
	}
	ease := easingExpression(easing)
	if ease == nil {
		return fmt.Sprintf("min((t-%.6f)/%.6f,1)*min((%.6f-t)/%.6f,1)",
			e.Start, effectSec, e.End(), effectSec)
	}
	in := fmt.Sprintf("clip((t-%.6f)/%.6f,0,1)", e.Start, effectSec)
	out := fmt.Sprintf("clip((%.6f-t)/%.6f,0,1)", e.End(), effectSec)
	return ease(in) + "*" + ease(out)
}

// easingExpression returns the ffmpeg form of a named easing, or nil for linear.
func easingExpression(name string) func(x string) string {
	switch name {
	case "ease-in-out", "cubic":
		return func(x string) string {
			return fmt.Sprintf("if(lt(%[1]s,0.5),4*pow(%[1]s,3),1-pow(2-2*%[1]s,3)/2)", x)
		}
	case "ease-out":
		return func(x string) string {
			return fmt.Sprintf("(1-pow(1-%s,2))", x)
		}
	default:
		return nil
	}
}

var drawTextEscaper = strings.NewReplacer(
	`\`, `\\\\`,
	`'`, "’",
	`:`, `\:`,
	`%`, `\%`,
)

func escapeDrawText(s string) string {
	return drawTextEscaper.Replace(s)
}
