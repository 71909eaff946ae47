//go:build stable

package buildinfo

func init() {
	features.Stable = true
}
