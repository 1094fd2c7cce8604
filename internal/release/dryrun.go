package release

// DryRunStore reads the current version and changelog from real stores and
// captures every write in Sink, leaving the real stores untouched.
type DryRunStore struct {
	Config    ConfigStore
	Changelog ChangelogStore
	Sink      *MemoryStore
}

// NewDryRunStore wraps config and changelog with an empty in-memory sink.
func NewDryRunStore(config ConfigStore, changelog ChangelogStore) *DryRunStore {
	return &DryRunStore{Config: config, Changelog: changelog, Sink: NewMemoryStore("", "")}
}

func (d *DryRunStore) ReadVersion() (string, error) { return d.Config.ReadVersion() }

func (d *DryRunStore) WriteVersion(version string) error { return d.Sink.WriteVersion(version) }

func (d *DryRunStore) Read() (string, error) { return d.Changelog.Read() }

func (d *DryRunStore) Write(content string) error { return d.Sink.Write(content) }

func (d *DryRunStore) WriteNotes(content string) error { return d.Sink.WriteNotes(content) }

func (d *DryRunStore) WriteEnv(key, value string) error { return d.Sink.WriteEnv(key, value) }
