// Package paging holds the list parameters shared by every directory resource.
package paging

// Params selects one page of a directory list. Zero values are left to the
// portal defaults.
type Params struct {
	Page     int
	PageSize int
	Search   string
}
