package toolkit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const (
	descriptorName = "toolkit.xml"
	infoName       = "info.xml"
)

// Search discovers the toolkits on a toolkit path.  Every version of
// every toolkit found is kept for Resolve to choose from.
type Search struct {
	reporter *diag.Reporter
	logger   *zap.Logger
	parser   ModelParser
	current  string
	spl      string

	paths   []string
	names   []string
	byName  map[string][]*Toolkit
	visited map[fileID]bool
}

type SearchOption func(*Search)

// WithParser replaces the XML descriptor parser.
func WithParser(p ModelParser) SearchOption {
	return func(s *Search) { s.parser = p }
}

// WithCurrent names the toolkit being compiled.
func WithCurrent(name string) SearchOption {
	return func(s *Search) { s.current = name }
}

// WithSPL names the standard toolkit.
func WithSPL(name string) SearchOption {
	return func(s *Search) { s.spl = name }
}

func NewSearch(reporter *diag.Reporter, logger *zap.Logger, opts ...SearchOption) *Search {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Search{
		reporter: reporter,
		logger:   logger,
		parser:   XMLParser{},
		byName:   make(map[string][]*Toolkit),
		visited:  make(map[fileID]bool),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type fileID struct {
	dev, ino uint64
}

func statID(path string) (fileID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileID{}, err
	}
	return fileID{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}

// SetPaths records the toolkit path.  Entries that do not exist are
// reported and dropped, as are entries naming a file or directory seen
// earlier under any name.  It reports whether any entry remains.
func (s *Search) SetPaths(paths []string) bool {
	seen := make(map[fileID]bool)
	for _, p := range paths {
		id, err := statID(p)
		if err != nil {
			s.reporter.Warn(srcfiles.Location{}, diag.PathIsNotADirectory, p)
			continue
		}
		if seen[id] {
			s.reporter.Warn(srcfiles.Location{}, diag.PathIsDuplicate, p)
			continue
		}
		seen[id] = true
		s.paths = append(s.paths, p)
	}
	return len(s.paths) > 0
}

func (s *Search) Paths() []string { return s.paths }

type job struct {
	dir  string
	file string

	model *ToolkitModel
	info  *InfoModel
	err   error
	ierr  error
}

// Locate scans the toolkit path.  Descriptors are parsed concurrently
// but registered in path order so the result does not depend on
// scheduling.  A malformed descriptor is reported and skipped; only
// cancellation of ctx stops the scan.
func (s *Search) Locate(ctx context.Context) error {
	var jobs []*job
	for _, p := range s.paths {
		fi, err := os.Stat(p)
		if err == nil && fi.IsDir() {
			jobs = s.collectDir(jobs, p)
		} else {
			jobs = s.collectList(jobs, p)
		}
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.parse(j)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	for _, j := range jobs {
		s.register(j)
	}
	return nil
}

func (s *Search) parse(j *job) {
	j.model, j.err = s.parser.Toolkit(j.file)
	if j.err != nil {
		return
	}
	info := filepath.Join(j.dir, infoName)
	if _, err := os.Stat(info); err == nil {
		j.info, j.ierr = s.parser.Info(info)
	}
}

// collectDir queues dir's toolkit.xml or, lacking one, the toolkit.xml
// of each immediate subdirectory.
func (s *Search) collectDir(jobs []*job, dir string) []*job {
	file := filepath.Join(dir, descriptorName)
	if isFile(file) {
		return append(jobs, &job{dir: dir, file: file})
	}
	entries, err := os.ReadDir(dir)
	found := false
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			sub := filepath.Join(dir, e.Name())
			if f := filepath.Join(sub, descriptorName); isFile(f) {
				jobs = append(jobs, &job{dir: sub, file: f})
				found = true
			}
		}
	}
	if !found {
		s.reporter.Warn(srcfiles.Location{}, diag.MissingToolkit, file)
	}
	return jobs
}

func (s *Search) collectList(jobs []*job, file string) []*job {
	if id, err := statID(file); err == nil {
		if s.visited[id] {
			return jobs
		}
		s.visited[id] = true
	}
	list, err := s.parser.List(file)
	if err != nil {
		s.reporter.Error(srcfiles.Location{File: file}, diag.ToolkitMalformed, file, err)
		return jobs
	}
	dir := filepath.Dir(file)
	for _, e := range list.Entries {
		if e.Directory != "" {
			jobs = s.collectDir(jobs, relativeTo(dir, e.Directory))
		}
		if e.ListFile != "" {
			jobs = s.collectList(jobs, relativeTo(dir, e.ListFile))
		}
	}
	return jobs
}

func relativeTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (s *Search) register(j *job) {
	loc := srcfiles.Location{File: j.file}
	if j.err != nil {
		s.reporter.Error(loc, diag.ToolkitMalformed, j.file, cause(j.err))
		return
	}
	if j.ierr != nil {
		info := filepath.Join(j.dir, infoName)
		s.reporter.Error(srcfiles.Location{File: info}, diag.ToolkitMalformed, info, cause(j.ierr))
	}
	for k := range j.model.Toolkits {
		tk, err := newToolkit(&j.model.Toolkits[k], j.info, j.dir, j.file)
		if err != nil {
			s.reporter.Error(loc, diag.ToolkitMalformed, j.file, err)
			continue
		}
		s.Add(tk)
	}
}

func cause(err error) error {
	var malformed *MalformedError
	if errors.As(err, &malformed) {
		return malformed.Err
	}
	return err
}

// Add registers a discovered toolkit.  A toolkit whose name was first
// found in "." shadows every later toolkit of that name, and a second
// copy of a known version is ignored.
func (s *Search) Add(tk *Toolkit) {
	tk.Current = tk.Current || s.current != "" && tk.Name == s.current
	tk.SPL = tk.SPL || s.spl != "" && tk.Name == s.spl
	versions, ok := s.byName[tk.Name]
	if !ok {
		s.logger.Debug("adding toolkit",
			zap.Stringer("toolkit", tk),
			zap.String("file", tk.File))
		s.names = append(s.names, tk.Name)
		s.byName[tk.Name] = []*Toolkit{tk}
		return
	}
	if versions[0].Dir == "." {
		s.reporter.Warn(srcfiles.Location{File: tk.File}, diag.SkippingToolkit, tk.Name, tk.Version.String(), tk.File)
		return
	}
	if slices.ContainsFunc(versions, func(v *Toolkit) bool { return v.Version.Equal(tk.Version) }) {
		s.logger.Debug("skipping duplicate toolkit",
			zap.Stringer("toolkit", tk),
			zap.String("file", tk.File))
		return
	}
	s.logger.Debug("adding toolkit version",
		zap.Stringer("toolkit", tk),
		zap.String("file", tk.File))
	s.byName[tk.Name] = append(versions, tk)
}

// Toolkits returns every toolkit found, grouped by name in discovery
// order.
func (s *Search) Toolkits() []*Toolkit {
	var out []*Toolkit
	for _, name := range s.names {
		out = append(out, s.byName[name]...)
	}
	return out
}

// Resolve selects one version of each discovered toolkit.
func (s *Search) Resolve() (*Resolution, error) {
	return Resolve(s.reporter, s.logger, s.Toolkits())
}
