package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/sudorook/doxy2swig/config"
)

// destructorMarker prefixes destructor member names.
const destructorMarker = "~"

// PostProcess finalizes an extracted entry list: deduplication,
// empty-description fallback, ignore marking with the destructor safety
// check, and a stable sort by name. It returns an error (and no entries)
// if any ignored entry is a destructor; excluding a destructor from the
// generated bindings would leak resources downstream.
func PostProcess(entries []*Entry, cfg *config.Config) ([]*Entry, error) {
	total := len(entries)
	entries = Dedup(entries)
	log.WithFields(map[string]any{
		"total":  total,
		"unique": len(entries),
	}).Info("deduplicated entries")

	for _, e := range entries {
		if !e.HasText(FieldDescription) && !e.HasText(FieldDetails) {
			e.Fields[FieldDescription] = e.Name
		}
	}

	var errs *multierror.Error
	for _, e := range entries {
		e.Ignore = strings.Contains(e.Text(FieldDescription), cfg.IgnoreMarker) ||
			strings.Contains(e.Text(FieldDetails), cfg.IgnoreMarker)
		if e.Ignore && strings.Contains(e.Name, destructorMarker) {
			errs = multierror.Append(errs, fmt.Errorf(
				"destructor %v is marked %v: it must stay in the generated bindings", e.Name, cfg.IgnoreMarker))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b *Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Dedup removes duplicate entries, keeping the first occurrence of each
// identity key in order. A function documented both at file level and at
// namespace level is emitted twice by the extractor; the identity key is
// Name plus Description plus Details, so such pairs collapse.
//
// Note the key deliberately excludes Usage, Arguments and the raw
// signature: distinct overloads with identical prose collapse into one
// entry. That mirrors the established output and is pinned by tests.
func Dedup(entries []*Entry) []*Entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		key := e.Name + e.Text(FieldDescription) + e.Text(FieldDetails)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
