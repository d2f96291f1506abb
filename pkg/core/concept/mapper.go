package concept

import (
	"log"
	"sort"
	"strings"

	"dart_analysis/pkg/models"
)

// Mapper resolves raw item names and XBRL concept identifiers against the
// section synonym tables. The tables are static; the zero-cost struct exists
// so callers inject the mapper explicitly instead of reaching for globals.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// normalizeText strips every whitespace variation (ASCII, ideographic space,
// tabs, newlines) so spaced DART labels like "자 산 총 계" match.
func normalizeText(s string) string {
	replacer := strings.NewReplacer(" ", "", "　", "", "\t", "", "\n", "", "\r", "")
	return strings.TrimSpace(replacer.Replace(s))
}

// MapLabel maps one cleaned item name to a canonical field of the given
// section. Matching is tier-major so an exact hit on any field always beats
// a substring hit on an earlier field: (1) exact, case-insensitive;
// (2) whitespace-normalized exact; (3) substring containment in either
// direction, normalized and case-insensitive. Returns false when nothing
// matches; the item-name path then keeps the label as a pass-through key.
func (m *Mapper) MapLabel(label string, section models.Section) (string, bool) {
	mappings := mappingsFor(section)
	if label == "" || mappings == nil {
		return "", false
	}

	labelLower := strings.ToLower(label)
	labelNorm := normalizeText(label)
	labelNormLower := strings.ToLower(labelNorm)

	// Tier 1: exact.
	for _, entry := range mappings {
		for _, syn := range entry.synonyms {
			if label == syn || labelLower == strings.ToLower(syn) {
				return entry.field, true
			}
		}
	}

	// Tier 2: whitespace-normalized exact.
	for _, entry := range mappings {
		for _, syn := range entry.synonyms {
			if labelNorm == normalizeText(syn) || labelNormLower == strings.ToLower(normalizeText(syn)) {
				return entry.field, true
			}
		}
	}

	// Tier 3: substring containment, either direction.
	for _, entry := range mappings {
		for _, syn := range entry.synonyms {
			synNormLower := strings.ToLower(normalizeText(syn))
			if synNormLower == "" {
				continue
			}
			if strings.Contains(labelNormLower, synNormLower) || strings.Contains(synNormLower, labelNormLower) {
				return entry.field, true
			}
		}
	}

	return "", false
}

// MapFacts maps a flat XBRL fact set (concept identifier or Korean label →
// numeric value) into the three canonical sections. Only canonical fields
// are retained on this path; unmapped concepts are dropped.
func (m *Mapper) MapFacts(facts map[string]float64) *models.NormalizedData {
	return &models.NormalizedData{
		BalanceSheet:    m.mapSectionFacts(facts, models.SectionBalanceSheet),
		IncomeStatement: m.mapSectionFacts(facts, models.SectionIncomeStatement),
		CashFlow:        m.mapSectionFacts(facts, models.SectionCashFlow),
	}
}

// mapSectionFacts runs the per-field synonym ladder over a fact set in two
// passes: exact lookups first (original, lowercase, normalized, normalized
// lowercase) for every field, then a substring scan over the keys no exact
// match claimed. A key claimed exactly never leaks into another field
// through the substring pass, so a combined total like
// ifrs-full:EquityAndLiabilities cannot shadow ifrs-full:Liabilities. Keys
// are scanned in sorted order so resolution is deterministic.
func (m *Mapper) mapSectionFacts(facts map[string]float64, section models.Section) map[string]float64 {
	result := make(map[string]float64)

	// Index variants for exact lookup, mapping back to the original key.
	index := make(map[string]string, len(facts)*4)
	keys := make([]string, 0, len(facts))
	for key := range facts {
		keys = append(keys, key)
		for _, variant := range []string{
			key,
			strings.ToLower(key),
			normalizeText(key),
			strings.ToLower(normalizeText(key)),
		} {
			if _, seen := index[variant]; !seen {
				index[variant] = key
			}
		}
	}
	sort.Strings(keys)

	claimed := make(map[string]bool)
	for _, entry := range mappingsFor(section) {
		for _, syn := range entry.synonyms {
			if key, ok := lookupVariants(index, syn); ok {
				result[entry.field] = facts[key]
				claimed[key] = true
				break
			}
		}
	}

	for _, entry := range mappingsFor(section) {
		if _, ok := result[entry.field]; !ok {
			for _, syn := range entry.synonyms {
				if key, ok := scanSubstring(keys, claimed, syn); ok {
					result[entry.field] = facts[key]
					break
				}
			}
		}
		if _, ok := result[entry.field]; !ok && criticalFields[entry.field] {
			log.Printf("[ConceptMapper] critical field %q unmapped in %s fact set", entry.field, section)
		}
	}
	return result
}

func lookupVariants(index map[string]string, syn string) (string, bool) {
	for _, variant := range []string{
		strings.ToLower(syn),
		syn,
		normalizeText(syn),
		strings.ToLower(normalizeText(syn)),
	} {
		if key, ok := index[variant]; ok {
			return key, true
		}
	}
	return "", false
}

func scanSubstring(sortedKeys []string, claimed map[string]bool, syn string) (string, bool) {
	synLower := strings.ToLower(syn)
	synNormLower := strings.ToLower(normalizeText(syn))
	for _, key := range sortedKeys {
		if claimed[key] {
			continue
		}
		keyLower := strings.ToLower(key)
		keyNormLower := strings.ToLower(normalizeText(key))
		if strings.Contains(keyLower, synLower) || strings.Contains(keyNormLower, synNormLower) {
			return key, true
		}
	}
	return "", false
}
