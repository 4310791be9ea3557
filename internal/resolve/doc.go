// Package resolve implements the package-resolution engine: the walk from
// selected profiles and explicit categories, through the category and
// catalog tables, down to the final deduplicated, ordered package list.
//
// Resolution is a pure function of its inputs. Unknown profiles,
// categories, and tools are skipped with an advisory warning rather than
// aborting the run; the tables are expected to grow independently of the
// resolver.
package resolve
