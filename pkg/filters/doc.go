// Package filters provides selection logic for repositories and tags in a transfer.
// Filters are plain predicates over names and chain the same way for both levels.
//
// Key components:
//   - Filter Functions: Select names (e.g., FilterByNames, FilterBySuffixes, FilterByExcludes).
//   - BuildFilter: Combines include, suffix and exclude rules into a single function.
//
// Usage example:
//
//	filter, desc := filters.BuildFilter("tags", []string{`1\..*`}, []string{"latest"}, nil)
//	if filter("1.25") {
//	    logrus.Info(desc)
//	}
package filters
