package srcfiles

import (
	"os"
	"strings"
	"sync"
)

// List is a registry of source texts keyed by file name.  Diagnostics
// use it to render the offending line under a message.
type List struct {
	mu    sync.RWMutex
	text  strings.Builder
	files map[string]File
	order []string
}

func NewList() *List {
	return &List{files: make(map[string]File)}
}

// Add registers src under name, replacing any earlier text for name.
func (l *List) Add(name string, src []byte) File {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := newFile(name, l.text.Len(), src)
	l.text.Write(src)
	l.text.WriteByte('\n')
	if _, ok := l.files[name]; !ok {
		l.order = append(l.order, name)
	}
	l.files[name] = f
	return f
}

// AddFile reads path and registers its contents under path.
func (l *List) AddFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return l.Add(path, b), nil
}

// File returns the registered file named name.
func (l *List) File(name string) (File, bool) {
	if l == nil {
		return File{}, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.files[name]
	return f, ok
}

// LineOf returns the source line containing loc.
func (l *List) LineOf(loc Location) (string, bool) {
	f, ok := l.File(loc.File)
	if !ok {
		return "", false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return f.Line(l.text.String(), loc.Line)
}

// Names returns the registered file names in registration order.
func (l *List) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}
