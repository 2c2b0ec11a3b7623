// Package markdown renders tables into GFM pipe-table pages and verifies the
// result by parsing it back with Goldmark.
package markdown
