// Package recipe inspects BitBake build variables and reports what a recipe
// will fetch and patch.
//
// Variables come from a `bitbake -e` dump, either read from a file or produced
// by running bitbake, with the process environment as a fallback. Two hooks
// turn the variables into diagnostics:
//
//   - SourceURIHook prints MACHINE and SRC_URI, lists local patches and warns
//     when an expected patch is absent.
//   - PackageGateHook prints MACHINE and SRC_URI only for one package.
//
// Diagnostics never fail a build; Emit logs them through logrus.
package recipe
