package release

// MemoryStore implements every collaborator interface in memory.
// It backs --dry-run and the orchestrator tests. Set the *Err fields to
// make the matching operation fail.
type MemoryStore struct {
	Version   string
	Changelog string
	Notes     string
	Env       map[string]string

	ReadVersionErr    error
	WriteVersionErr   error
	ReadChangelogErr  error
	WriteChangelogErr error
	WriteNotesErr     error
	WriteEnvErr       error

	// Writes records the order of successful writes ("version", "changelog", "notes", "env").
	Writes []string
}

// NewMemoryStore returns a store holding version and an existing changelog.
func NewMemoryStore(version, changelog string) *MemoryStore {
	return &MemoryStore{Version: version, Changelog: changelog, Env: map[string]string{}}
}

func (m *MemoryStore) ReadVersion() (string, error) {
	if m.ReadVersionErr != nil {
		return "", m.ReadVersionErr
	}
	return m.Version, nil
}

func (m *MemoryStore) WriteVersion(version string) error {
	if m.WriteVersionErr != nil {
		return m.WriteVersionErr
	}
	m.Version = version
	m.Writes = append(m.Writes, "version")
	return nil
}

func (m *MemoryStore) Read() (string, error) {
	if m.ReadChangelogErr != nil {
		return "", m.ReadChangelogErr
	}
	return m.Changelog, nil
}

func (m *MemoryStore) Write(content string) error {
	if m.WriteChangelogErr != nil {
		return m.WriteChangelogErr
	}
	m.Changelog = content
	m.Writes = append(m.Writes, "changelog")
	return nil
}

func (m *MemoryStore) WriteNotes(content string) error {
	if m.WriteNotesErr != nil {
		return m.WriteNotesErr
	}
	m.Notes = content
	m.Writes = append(m.Writes, "notes")
	return nil
}

func (m *MemoryStore) WriteEnv(key, value string) error {
	if m.WriteEnvErr != nil {
		return m.WriteEnvErr
	}
	if m.Env == nil {
		m.Env = map[string]string{}
	}
	m.Env[key] = value
	m.Writes = append(m.Writes, "env")
	return nil
}
