package model

// Published keys, in publication order.
const (
	KeyVersion       = "VERSION"
	KeyRevision      = "BUILD_GIT_REVISION"
	KeyShortRevision = "BUILD_GIT_SHORT_REVISION"
	KeyBranch        = "BUILD_GIT_BRANCH"
	KeyDate          = "BUILD_DATE"
	KeyUser          = "BUILD_USER"
	KeyToolchain     = "TOOLCHAIN"
	KeyFeatures      = "BUILD_FEATURES"
)

// KeyValue is one published build-time constant.
type KeyValue struct {
	Key   string
	Value string
}

// Metadata aggregates everything published for one build invocation.
type Metadata struct {
	Version    string        `json:"version" yaml:"version"`
	Revision   RevisionInfo  `json:"revision" yaml:"revision"`
	Branch     BranchInfo    `json:"branch" yaml:"branch"`
	Stamp      BuildStamp    `json:"stamp" yaml:"stamp"`
	Toolchain  ToolchainInfo `json:"toolchain" yaml:"toolchain"`
	Features   FeatureFlags  `json:"features" yaml:"features"`
	Target     Target        `json:"target" yaml:"target"`
	Advisories []Advisory    `json:"advisories,omitempty" yaml:"advisories,omitempty"`
	// Watch lists the files whose change requires re-deriving the metadata.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`
}

// Pairs returns the published constants in publication order.
func (m *Metadata) Pairs() []KeyValue {
	return []KeyValue{
		{KeyVersion, m.Version},
		{KeyRevision, m.Revision.Full},
		{KeyShortRevision, m.Revision.Short},
		{KeyBranch, m.Branch.Name},
		{KeyDate, m.Stamp.Date},
		{KeyUser, m.Stamp.User},
		{KeyToolchain, m.Toolchain.Descriptor()},
	}
}

// Lookup returns the value published under key.
func (m *Metadata) Lookup(key string) (string, bool) {
	for _, kv := range m.Pairs() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}
