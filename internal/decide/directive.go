package decide

import (
	"regexp"
	"strings"
)

// The assistant signals a finished plan with a trailing pseudo function call:
//
//	<function_calls>
//	<invoke name="PathPlan_response">
//	<parameter name="is_pathPlan">true</parameter>
//	</invoke>
//	</function_calls>
var (
	reBlock     = regexp.MustCompile(`(?s)<function_calls>.*?</function_calls>`)
	reInvoke    = regexp.MustCompile(`<invoke name="(.*?)">`)
	reParameter = regexp.MustCompile(`<parameter name="(.*?)">(.*?)</parameter>`)
	reStrip     = regexp.MustCompile(`(?s)\s*<function_calls>.*?</function_calls>`)
)

// Directive is the first invocation found inside the first directive block.
type Directive struct {
	Name  string
	Param string
	Value string
}

// Flag reports the literal boolean carried by the directive.
// Only the exact string "true" counts.
func (d Directive) Flag() bool {
	return d.Value == "true"
}

// ParseDirective extracts the directive from raw assistant text. ok is false when
// the block, the invocation or the parameter is missing. The parameter name is
// taken as-is and not checked against is_pathPlan.
func ParseDirective(text string) (Directive, bool) {
	block := reBlock.FindString(text)
	if block == "" {
		return Directive{}, false
	}

	inv := reInvoke.FindStringSubmatch(block)
	if inv == nil {
		return Directive{}, false
	}

	param := reParameter.FindStringSubmatch(block)
	if param == nil {
		return Directive{}, false
	}

	return Directive{Name: inv[1], Param: param[1], Value: param[2]}, true
}

// StripDirectives removes every directive block together with the whitespace
// preceding it, then trims the result.
func StripDirectives(text string) string {
	return strings.TrimSpace(reStrip.ReplaceAllString(text, ""))
}
