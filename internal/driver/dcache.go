package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"keyva/internal/diag"
	"keyva/internal/source"
	"keyva/internal/token"
)

// Bump when the payload layout changes; stale entries simply miss.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores token streams keyed by content hash, so re-checking an
// unchanged script skips the lexer. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// tokenPayload is one token with file-relative offsets. FileIDs are
// per-process, so spans are rebuilt against the current FileSet on load.
type tokenPayload struct {
	Kind  uint8
	Start uint32
	End   uint32
	Text  string
}

type diagPayload struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

// DiskPayload is the cached result of tokenizing one script.
type DiskPayload struct {
	Schema uint16
	Path   string
	Tokens []tokenPayload
	Diags  []diagPayload
}

// OpenDiskCache initializes the cache at the standard location
// ($XDG_CACHE_HOME/<app> or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	// Subdirectory keeps the cache root listable and easy to clear.
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically (temp file plus rename).
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; a missing entry or schema mismatch is a miss, not an
// error.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll clears the whole cache directory.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// TokenizeCached is Tokenize with a read-through cache keyed by the file's
// content hash. Leading trivia is not cached; cached tokens come back
// without it, which the check path never looks at anyway.
func TokenizeCached(cache *DiskCache, path string, maxDiagnostics int) (*TokenizeResult, bool, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, false, err
	}
	file := fs.Get(fileID)

	var payload DiskPayload
	hit, err := cache.Get(file.Hash, &payload)
	if err == nil && hit {
		return rebuildFromPayload(fs, file, &payload, maxDiagnostics), true, nil
	}

	res := tokenizeFile(fs, fileID, maxDiagnostics)
	_ = cache.Put(file.Hash, buildPayload(path, res))
	return res, false, nil
}

func buildPayload(path string, res *TokenizeResult) *DiskPayload {
	p := &DiskPayload{Schema: diskCacheSchemaVersion, Path: path}
	p.Tokens = make([]tokenPayload, len(res.Tokens))
	for i, tok := range res.Tokens {
		p.Tokens[i] = tokenPayload{
			Kind:  uint8(tok.Kind),
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Text:  tok.Text,
		}
	}
	for _, d := range res.Bag.Items() {
		p.Diags = append(p.Diags, diagPayload{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return p
}

func rebuildFromPayload(fs *source.FileSet, file *source.File, p *DiskPayload, maxDiagnostics int) *TokenizeResult {
	tokens := make([]token.Token, len(p.Tokens))
	for i, t := range p.Tokens {
		tokens[i] = token.Token{
			Kind: token.Kind(t.Kind),
			Span: source.Span{File: file.ID, Start: t.Start, End: t.End},
			Text: t.Text,
		}
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range p.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file.ID, Start: d.Start, End: d.End},
		})
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}
}
