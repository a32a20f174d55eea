package filters

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/harborlift/pkg/types"
)

// NoFilter allows every name through.
//
// Returns:
//   - bool: Always true.
func NoFilter(string) bool {
	return true
}

// matches reports whether name equals pattern or is fully matched by it as a regular expression.
func matches(pattern, name string) bool {
	if pattern == name {
		return true
	}

	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		logrus.WithError(err).WithField("pattern", pattern).Warn("Invalid regex in name filter")

		return false
	}

	return re.MatchString(name)
}

// FilterByNames selects names equal to, or fully matched by, one of the patterns.
//
// Parameters:
//   - patterns: Names or regex patterns to match.
//   - baseFilter: Base filter to chain.
//
// Returns:
//   - types.Filter: Filter combining the name check with the base filter.
func FilterByNames(patterns []string, baseFilter types.Filter) types.Filter {
	if len(patterns) == 0 {
		return baseFilter
	}

	return func(name string) bool {
		for _, pattern := range patterns {
			if matches(pattern, name) {
				logrus.WithFields(logrus.Fields{
					"name":    name,
					"pattern": pattern,
				}).Trace("Name matched include filter")

				return baseFilter(name)
			}
		}

		return false
	}
}

// FilterByExcludes rejects names equal to, or fully matched by, one of the patterns.
//
// Parameters:
//   - patterns: Names or regex patterns to exclude.
//   - baseFilter: Base filter to chain.
//
// Returns:
//   - types.Filter: Filter excluding the patterns and applying the base filter.
func FilterByExcludes(patterns []string, baseFilter types.Filter) types.Filter {
	if len(patterns) == 0 {
		return baseFilter
	}

	return func(name string) bool {
		for _, pattern := range patterns {
			if matches(pattern, name) {
				logrus.WithFields(logrus.Fields{
					"name":    name,
					"pattern": pattern,
				}).Debug("Name excluded by filter")

				return false
			}
		}

		return baseFilter(name)
	}
}

// FilterBySuffixes selects names ending in one of the suffixes.
//
// Parameters:
//   - suffixes: Accepted name suffixes, e.g. "-prod".
//   - baseFilter: Base filter to chain.
//
// Returns:
//   - types.Filter: Filter combining the suffix check with the base filter.
func FilterBySuffixes(suffixes []string, baseFilter types.Filter) types.Filter {
	if len(suffixes) == 0 {
		return baseFilter
	}

	return func(name string) bool {
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				return baseFilter(name)
			}
		}

		return false
	}
}

// BuildFilter combines include patterns, exclude patterns and suffixes into one filter.
//
// Parameters:
//   - kind: Noun used in the description, e.g. "repositories" or "tags".
//   - include: Names or patterns to include; empty includes everything.
//   - exclude: Names or patterns to exclude.
//   - suffixes: Required name suffixes; empty accepts any.
//
// Returns:
//   - types.Filter: Combined filter function.
//   - string: Description of the filter.
func BuildFilter(kind string, include, exclude, suffixes []string) (types.Filter, string) {
	filter := types.Filter(NoFilter)
	filter = FilterByNames(include, filter)
	filter = FilterBySuffixes(suffixes, filter)
	filter = FilterByExcludes(exclude, filter)

	var parts []string

	if len(include) > 0 {
		parts = append(parts, `matching "`+strings.Join(include, `" or "`)+`"`)
	}

	if len(suffixes) > 0 {
		parts = append(parts, `ending in "`+strings.Join(suffixes, `" or "`)+`"`)
	}

	if len(exclude) > 0 {
		parts = append(parts, `not matching "`+strings.Join(exclude, `" or "`)+`"`)
	}

	desc := "all " + kind
	if len(parts) > 0 {
		desc = kind + " " + strings.Join(parts, ", ")
	}

	logrus.WithFields(logrus.Fields{
		"kind":        kind,
		"filter_desc": desc,
	}).Debug("Filter built")

	return filter, desc
}
