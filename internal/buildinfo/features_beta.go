//go:build beta

package buildinfo

func init() {
	features.Beta = true
}
