// internal/matching/synonyms.go
// Static domain thesauri for subjects, skill levels and study styles, plus
// the expansion logic that turns free-text tags into comparable term sets.
//
// The three dictionaries are merged into a single lookup at expansion time,
// so a term that resembles a synonym in one family can also pull in an
// unrelated family (e.g. a skill-level synonym that happens to overlap a
// subject synonym). That breadth-over-precision behavior is intentional and
// relied on by existing match scores; do not narrow the scan to a single
// family without re-tuning.

package matching

import "strings"

// SynonymIndex holds the three immutable thesauri. Build it once at process
// start and share it freely; Expand never mutates it.
type SynonymIndex struct {
	subjects    map[string][]string
	skillLevels map[string][]string
	studyStyles map[string][]string
}

// NewSynonymIndex builds an index from caller-supplied tables. Keys and
// synonyms are normalized to lowercase/trimmed form. Tests use this to
// substitute a small controlled thesaurus.
func NewSynonymIndex(subjects, skillLevels, studyStyles map[string][]string) *SynonymIndex {
	return &SynonymIndex{
		subjects:    normalizeTable(subjects),
		skillLevels: normalizeTable(skillLevels),
		studyStyles: normalizeTable(studyStyles),
	}
}

// DefaultSynonymIndex returns the production thesauri.
func DefaultSynonymIndex() *SynonymIndex {
	return NewSynonymIndex(subjectSynonyms, skillLevelSynonyms, studyStyleSynonyms)
}

func normalizeTable(table map[string][]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for key, syns := range table {
		normalized := make([]string, 0, len(syns))
		for _, s := range syns {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				normalized = append(normalized, s)
			}
		}
		out[strings.ToLower(strings.TrimSpace(key))] = normalized
	}
	return out
}

// Expand returns the term itself plus every synonym family the term relates
// to. A term relates to a family when it equals, contains or is contained by
// the canonical key or any of its synonyms. All three thesauri are scanned.
func (idx *SynonymIndex) Expand(term string) map[string]bool {
	result := make(map[string]bool)
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return result
	}
	result[normalized] = true

	for _, table := range []map[string][]string{idx.subjects, idx.skillLevels, idx.studyStyles} {
		for key, synonyms := range table {
			if !termRelates(normalized, key, synonyms) {
				continue
			}
			result[key] = true
			for _, s := range synonyms {
				result[s] = true
			}
		}
	}
	return result
}

// ExpandMany unions the expansions of every term in the slice.
func (idx *SynonymIndex) ExpandMany(terms []string) map[string]bool {
	result := make(map[string]bool)
	for _, term := range terms {
		for expanded := range idx.Expand(term) {
			result[expanded] = true
		}
	}
	return result
}

// termRelates reports whether a normalized term hits a canonical key or any
// of its synonyms by equality or substring containment in either direction.
func termRelates(term, key string, synonyms []string) bool {
	if fuzzyContains(term, key) {
		return true
	}
	for _, s := range synonyms {
		if fuzzyContains(term, s) {
			return true
		}
	}
	return false
}

func fuzzyContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// subjectSynonyms maps canonical subject names to common variants,
// abbreviations and closely related course names.
var subjectSynonyms = map[string][]string{
	"mathematics": {"math", "maths", "calculus", "algebra", "geometry", "trigonometry", "statistics", "probability", "linear algebra", "discrete math"},
	"physics":     {"mechanics", "thermodynamics", "electromagnetism", "quantum physics", "optics", "astrophysics"},
	"chemistry":   {"organic chemistry", "inorganic chemistry", "biochemistry", "chem", "physical chemistry"},
	"biology":     {"bio", "anatomy", "physiology", "genetics", "microbiology", "zoology", "botany", "ecology"},
	"computer science": {"cs", "programming", "coding", "software", "software engineering", "algorithms", "data structures", "compsci"},
	"data science":     {"machine learning", "ml", "ai", "artificial intelligence", "data analysis", "analytics", "deep learning"},
	"english":          {"literature", "english literature", "writing", "composition", "creative writing", "grammar"},
	"history":          {"world history", "european history", "american history", "ancient history", "modern history"},
	"geography":        {"geo", "human geography", "physical geography", "cartography"},
	"economics":        {"econ", "microeconomics", "macroeconomics", "finance", "accounting", "business studies"},
	"psychology":       {"psych", "cognitive science", "behavioral science", "neuroscience"},
	"philosophy":       {"ethics", "logic", "epistemology", "metaphysics"},
	"law":              {"legal studies", "jurisprudence", "constitutional law", "criminal law"},
	"medicine":         {"med", "pre-med", "premed", "pharmacology", "nursing", "public health"},
	"engineering":      {"mechanical engineering", "electrical engineering", "civil engineering", "chemical engineering"},
	"art":              {"fine art", "art history", "drawing", "painting", "design", "graphic design"},
	"music":            {"music theory", "composition", "musicology"},
	"spanish":          {"espanol", "spanish language"},
	"french":           {"francais", "french language"},
	"german":           {"deutsch", "german language"},
	"chinese":          {"mandarin", "chinese language"},
	"japanese":         {"nihongo", "japanese language"},
	"political science": {"politics", "polisci", "government", "international relations"},
	"sociology":         {"social science", "social studies", "anthropology"},
	"environmental science": {"environment", "climate science", "sustainability"},
	"test prep":             {"sat", "act", "gre", "gmat", "lsat", "mcat", "ielts", "toefl", "exam prep"},
}

// skillLevelSynonyms maps the canonical level labels to casual phrasings.
var skillLevelSynonyms = map[string][]string{
	"beginner":     {"novice", "newbie", "starter", "basic", "introductory", "elementary", "new"},
	"intermediate": {"medium", "moderate", "average", "mid-level", "some experience"},
	"advanced":     {"experienced", "proficient", "skilled", "upper-level", "strong"},
	"expert":       {"master", "professional", "specialist", "guru", "pro"},
}

// studyStyleSynonyms maps the canonical study-style labels to related terms.
var studyStyleSynonyms = map[string][]string{
	"visual":          {"diagrams", "charts", "videos", "visual learner", "seeing"},
	"auditory":        {"listening", "audio", "lectures", "podcasts", "auditory learner"},
	"kinesthetic":     {"hands-on", "practical", "doing", "tactile", "active learning"},
	"reading_writing": {"reading", "writing", "notes", "note-taking", "text-based"},
	"collaborative":   {"group", "group study", "team", "together", "social learning", "discussion"},
	"independent":     {"solo", "alone", "self-study", "self-paced", "individual"},
	"mixed":           {"flexible", "varied", "combination", "all styles", "adaptive"},
}
