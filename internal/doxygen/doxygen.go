// Package doxygen loads the XML output of Doxygen into an ownership tree of
// Nodes with a refid lookup cache.
//
// Compound membership in Doxygen XML is redundant: a class is declared by its
// namespace, by the groups that list it and by the file that defines it. The
// loader resolves this with ordered construction phases. Language entities are
// built first, then groups, then directories and files; each phase may only
// claim Nodes that still sit at the top level, and a cleanup pass after each
// phase drops top-level entries that were claimed by a container. Details that
// reference other Nodes are filled in by a separate finalization pass once the
// tree is complete.
package doxygen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/logging"
	"github.com/itsmostafa/godoxy/internal/xmldoc"
)

// IndexEntry is one compound declaration of index.xml.
type IndexEntry struct {
	Kind  Kind
	Refid string
	Name  string
}

// PhaseStats counts what a construction phase did.
type PhaseStats struct {
	Phase   Phase
	Entries int // index entries of the phase's kinds
	Parsed  int // entries parsed and attached to the root
	Skipped int // entries already cached by an earlier parse
	Failed  int // entries whose document could not be parsed
	Removed int // top-level entries dropped by cleanup
}

// Stats summarizes a load.
type Stats struct {
	Compounds int // compound declarations read from index.xml
	Invalid   int // compound declarations without kind or refid
	Phases    []PhaseStats
	Nodes     int // Nodes in the final cache
	TopLevel  int // direct children of the root
}

// Failed returns the total number of entries that failed to parse.
func (s Stats) Failed() int {
	total := 0
	for _, p := range s.Phases {
		total += p.Failed
	}
	return total
}

// Doxygen is the index loader. It is not safe for concurrent use.
type Doxygen struct {
	inputDir string
	index    *Node
	cache    *Cache
	log      logging.Logger
	stats    Stats
	loaded   bool
}

// Option configures a Doxygen loader.
type Option func(*Doxygen)

// WithLogger sets the logger used for recoverable failures.
func WithLogger(l logging.Logger) Option {
	return func(d *Doxygen) {
		d.log = l
	}
}

// New returns a loader for the Doxygen XML output in inputDir.
func New(inputDir string, opts ...Option) *Doxygen {
	d := &Doxygen{
		inputDir: inputDir,
		index:    newRoot(),
		cache:    NewCache(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the sentinel root Node.
func (d *Doxygen) Root() *Node {
	return d.index
}

// Cache returns the refid cache.
func (d *Doxygen) Cache() *Cache {
	return d.cache
}

// Stats returns the statistics of the last load.
func (d *Doxygen) Stats() Stats {
	return d.stats
}

// InputDir returns the directory the loader reads from.
func (d *Doxygen) InputDir() string {
	return d.inputDir
}

// Load reads index.xml and builds the tree. A missing or structurally broken
// index is fatal; a compound whose own document fails to parse is logged and
// skipped.
func (d *Doxygen) Load(ctx context.Context) error {
	d.index = newRoot()
	d.cache.Reset()
	d.stats = Stats{}
	d.loaded = false

	entries, err := d.IndexEntries()
	if err != nil {
		return err
	}
	d.stats.Compounds = len(entries)

	parser := &Parser{
		Cache:    d.cache,
		InputDir: d.inputDir,
	}

	for _, phase := range Phases() {
		phaseCtx := logging.WithDefaultArgs(ctx, "phase", phase.String())
		parser.Warn = func(refid string, err error) {
			d.log.WarnCtx(phaseCtx, "failed to parse inner compound", "refid", refid, "error", err)
		}

		ps, err := d.runPhase(phaseCtx, parser, phase, entries)
		if err != nil {
			return err
		}
		ps.Removed = d.index.Cleanup()
		d.stats.Phases = append(d.stats.Phases, ps)
		d.log.DebugCtx(phaseCtx, "phase complete",
			"parsed", ps.Parsed, "skipped", ps.Skipped, "failed", ps.Failed, "removed", ps.Removed)
	}

	d.cache.Rebuild(d.index)
	d.stats.Nodes = d.cache.Len()
	d.stats.TopLevel = len(d.index.Children)
	d.loaded = true
	return nil
}

func (d *Doxygen) runPhase(ctx context.Context, parser *Parser, phase Phase, entries []IndexEntry) (PhaseStats, error) {
	ps := PhaseStats{Phase: phase}
	for _, entry := range entries {
		if !phase.Accepts(entry.Kind) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ps, err
		}
		ps.Entries++

		if d.cache.Has(entry.Refid) {
			ps.Skipped++
			continue
		}
		child, err := parser.Parse(entry.Refid, phase.RecurseMembers())
		if err != nil {
			ps.Failed++
			d.log.WarnCtx(ctx, "failed to parse member", "refid", entry.Refid, "error", err)
			continue
		}
		d.index.Children = append(d.index.Children, child)
		if child.Parent == nil {
			child.Parent = d.index
		}
		ps.Parsed++
	}
	return ps, nil
}

// IndexEntries reads the compound declarations of index.xml in document order.
func (d *Doxygen) IndexEntries() ([]IndexEntry, error) {
	indexPath := filepath.Join(d.inputDir, "index.xml")
	doc, err := xmldoc.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndex, err)
	}

	root, err := doc.FirstChildElement("doxygenindex")
	if err != nil {
		return nil, fmt.Errorf("%w: unable to find root element in file %s: %w", ErrIndex, indexPath, err)
	}
	compound, err := root.FirstChildElement("compound")
	if err != nil {
		return nil, fmt.Errorf("%w: no <compound> element in file %s: %w", ErrIndex, indexPath, err)
	}

	var entries []IndexEntry
	for err == nil {
		entry, attrErr := readEntry(compound)
		if attrErr != nil {
			d.stats.Invalid++
			d.log.Warn("compound error", "file", indexPath, "error", attrErr)
		} else {
			entries = append(entries, entry)
		}
		compound, err = compound.NextSiblingElement("compound")
	}
	if !errors.Is(err, xmldoc.ErrMissingElement) {
		return nil, fmt.Errorf("%w: %w", ErrIndex, err)
	}
	return entries, nil
}

func readEntry(compound *xmldoc.Element) (IndexEntry, error) {
	kind, err := compound.Attr("kind")
	if err != nil {
		return IndexEntry{}, err
	}
	refid, err := compound.Attr("refid")
	if err != nil {
		return IndexEntry{}, err
	}
	if refid == "" {
		return IndexEntry{}, fmt.Errorf("%w: empty refid", xmldoc.ErrMissingAttr)
	}
	return IndexEntry{Kind: Kind(kind), Refid: refid, Name: compound.ChildText("name")}, nil
}

// Finalize fills in the detail payload of every Node, depth first. It must
// follow a successful Load.
func (d *Doxygen) Finalize(cfg *config.Config, printer TextPrinter) error {
	if !d.loaded {
		return ErrNotLoaded
	}
	d.finalizeRecursively(cfg, printer, d.index)
	return nil
}

func (d *Doxygen) finalizeRecursively(cfg *config.Config, printer TextPrinter, node *Node) {
	for _, child := range node.Children {
		child.Finalize(cfg, printer, d.cache)
		d.finalizeRecursively(cfg, printer, child)
	}
}

// Find returns the cached Node for refid.
func (d *Doxygen) Find(refid string) (*Node, error) {
	n, ok := d.cache.Get(refid)
	if !ok {
		return nil, fmt.Errorf("%w: failed to find node from cache by refid %s", ErrNotFound, refid)
	}
	return n, nil
}
