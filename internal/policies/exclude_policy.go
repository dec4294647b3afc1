package policies

import (
	"fmt"
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundlebridge/internal/types"
)

// AnyExpression matches every value in an exclude rule pattern.
const AnyExpression = "*"

// ExcludePolicy evaluates a descriptor's exclude rules against module
// ids. Patterns follow exact-or-regexp semantics: a pattern matches when
// it is "*", equals the value verbatim, or matches it as an anchored
// regular expression.
type ExcludePolicy struct {
	rules []types.ExcludeRule
}

func NewExcludePolicy(rules []types.ExcludeRule) ExcludePolicy {
	return ExcludePolicy{rules: rules}
}

// Excludes reports whether the module id is excluded on the given
// configuration by any rule.
func (p ExcludePolicy) Excludes(conf string, mid types.ModuleID) (bool, error) {
	for _, rule := range p.rules {
		if !ruleAppliesTo(rule, conf) {
			continue
		}
		orgMatch, err := MatchExpression(rule.Organisation, mid.Organisation)
		if err != nil {
			return false, err
		}
		if !orgMatch {
			continue
		}
		nameMatch, err := MatchExpression(rule.Name, mid.Name)
		if err != nil {
			return false, err
		}
		if nameMatch {
			return true, nil
		}
	}
	return false, nil
}

// MatchExpression applies one exact-or-regexp pattern to a value.
func MatchExpression(pattern string, value string) (bool, error) {
	if pattern == AnyExpression {
		return true, nil
	}
	if pattern == value {
		return true, nil
	}
	compiled, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid exclude pattern: %s", pattern)).
			WithCause(err)
	}
	return compiled.MatchString(value), nil
}

func ruleAppliesTo(rule types.ExcludeRule, conf string) bool {
	for _, candidate := range rule.Confs {
		if candidate == conf || candidate == AnyExpression {
			return true
		}
	}
	return false
}
