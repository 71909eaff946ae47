//go:build nightly

package buildinfo

func init() {
	features.Nightly = true
}
