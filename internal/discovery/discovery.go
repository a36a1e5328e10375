package discovery

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TheEpicBlock/quilt-loader/internal/mod"
	"github.com/TheEpicBlock/quilt-loader/internal/observability"
)

// Candidate is one discovered mod plus its provenance. Candidates exist
// from discovery until the loader either admits or drops them.
type Candidate struct {
	Meta mod.Metadata

	// Origin is the path of the archive or directory the manifest came from.
	Origin string

	// Classpath marks candidates found on the development classpath
	// rather than in a packaged archive.
	Classpath bool
}

// Registrar is the host's code-loading registration boundary. It is
// invoked once per archive that contributed at least one candidate,
// before that archive's candidates are merged in.
type Registrar interface {
	RegisterArchive(path string) error
}

// NopRegistrar accepts every archive.
type NopRegistrar struct{}

func (NopRegistrar) RegisterArchive(string) error { return nil }

// Config assembles a Scanner.
type Config struct {
	Registrar Registrar
	// DevPaths are extra classpath sources (directories holding a
	// manifest, or archive files) scanned before the mods directory.
	DevPaths []string
	Logger   zerolog.Logger
}

// Scanner collects mod candidates from classpath entries and packaged
// archives.
type Scanner struct {
	registrar Registrar
	devPaths  []string
	log       zerolog.Logger
}

func NewScanner(cfg Config) *Scanner {
	registrar := cfg.Registrar
	if registrar == nil {
		registrar = NopRegistrar{}
	}
	return &Scanner{
		registrar: registrar,
		devPaths:  cfg.DevPaths,
		log:       cfg.Logger,
	}
}

// Scan returns the union of candidates from the development classpath
// and the packaged archives under modsDir, in that order. A missing
// mods directory is created and contributes nothing.
func (s *Scanner) Scan(modsDir string) []Candidate {
	candidates := s.scanClasspath()
	candidates = append(candidates, s.scanModsDir(modsDir)...)
	return candidates
}

func (s *Scanner) scanClasspath() []Candidate {
	var out []Candidate
	for _, path := range s.devPaths {
		mods, err := s.readClasspathEntry(path)
		if err != nil {
			s.log.Error().Err(err).Str("path", path).Msg("skipping classpath entry")
			observability.RecordSourceError("classpath")
			continue
		}
		for _, m := range mods {
			out = append(out, Candidate{Meta: m, Origin: path, Classpath: true})
		}
	}
	observability.RecordCandidates("classpath", len(out))
	s.log.Debug().Int("count", len(out)).Msg("found classpath mods")
	return out
}

func (s *Scanner) readClasspathEntry(path string) ([]mod.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("discovery: stat classpath entry: %w", err)
	}
	if info.IsDir() {
		data, err := os.ReadFile(filepath.Join(path, mod.ManifestName))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("discovery: read manifest: %w", err)
		}
		return mod.ParseManifest(data)
	}
	if isArchive(path) {
		return readArchiveManifest(path)
	}
	return nil, nil
}

func (s *Scanner) scanModsDir(dir string) []Candidate {
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			s.log.Error().Err(mkErr).Str("dir", dir).Msg("cannot create mods directory")
		}
		return nil
	}
	if err != nil {
		s.log.Error().Err(err).Str("dir", dir).Msg("cannot read mods directory")
		observability.RecordSourceError("modsdir")
		return nil
	}

	var out []Candidate
	for _, entry := range entries {
		if entry.IsDir() || !isArchive(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		mods, err := readArchiveManifest(path)
		if err != nil {
			s.log.Error().Err(err).Str("archive", path).Msg("skipping unreadable mod archive")
			observability.RecordSourceError("archive")
			continue
		}
		if len(mods) == 0 {
			continue
		}
		// Register before merging so a failed registration excludes the
		// archive's candidates entirely.
		if err := s.registrar.RegisterArchive(path); err != nil {
			s.log.Error().Err(err).Str("archive", path).Msg("registration failed, excluding archive")
			observability.RecordSourceError("registration")
			continue
		}
		for _, m := range mods {
			out = append(out, Candidate{Meta: m, Origin: path})
		}
	}
	observability.RecordCandidates("archive", len(out))
	s.log.Debug().Int("count", len(out)).Str("dir", dir).Msg("found packaged mods")
	return out
}

func isArchive(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jar" || ext == ".zip"
}

// readArchiveManifest reads the manifest at the archive root. An archive
// without a manifest yields zero mods and no error.
func readArchiveManifest(path string) ([]mod.Metadata, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("discovery: open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != mod.ManifestName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("discovery: open manifest entry: %w", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("discovery: read manifest entry: %w", err)
		}
		return mod.ParseManifest(data)
	}
	return nil, nil
}
