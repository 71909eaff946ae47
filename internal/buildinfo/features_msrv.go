//go:build msrv

package buildinfo

func init() {
	features.MSRV = true
}
