package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jask/floorplan/internal/domain"
	"github.com/jask/floorplan/internal/layoutio"
)

// OfflineGenerator builds layouts locally from keyword heuristics. It needs no
// network and always succeeds for non-empty input.
type OfflineGenerator struct{}

// maxDepartments is how many shelves fit in two rows above the checkout.
const maxDepartments = 6

func NewOfflineGenerator() *OfflineGenerator { return &OfflineGenerator{} }

type department struct {
	name     string
	keywords []string
	color    string
	ticket   float64
}

var departments = []department{
	{"Electronics", []string{"electronic", "phone", "computer", "tv", "gadget", "tech"}, "#597DA9", 350},
	{"Clothing", []string{"cloth", "fashion", "apparel", "shoe", "wear", "boutique"}, "#E85D75", 120},
	{"Home & Garden", []string{"home", "garden", "furniture", "decor", "kitchen"}, "#59A96D", 85},
	{"Groceries", []string{"grocer", "food", "supermarket", "fresh", "produce", "market"}, "#E8A75D", 30},
	{"Health & Beauty", []string{"pharma", "health", "beauty", "cosmetic", "drug"}, "#9D59A9", 45},
	{"Books", []string{"book", "magazine", "stationery", "paper"}, "#5DA9A7", 25},
	{"Toys", []string{"toy", "kid", "child", "game"}, "#D9A441", 40},
	{"Sports", []string{"sport", "fitness", "outdoor", "bike", "gym"}, "#4F7942", 95},
}

// FromText picks departments whose keywords best match description and lays
// them out in rows.
func (g *OfflineGenerator) FromText(ctx context.Context, description string) ([]byte, error) {
	if err := requireText(description); err != nil {
		return nil, err
	}
	picked := rankDepartments(strings.ToLower(description))
	return layoutio.Marshal(buildLayout(properCap(firstWords(description, 4)), picked))
}

// FromImage cannot read images; it returns a general store layout.
func (g *OfflineGenerator) FromImage(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	if err := requireImage(image); err != nil {
		return nil, err
	}
	return layoutio.Marshal(buildLayout("Image-based layout", departments[:4]))
}

func rankDepartments(desc string) []department {
	type scored struct {
		d     department
		score float64
		idx   int
	}
	var hits []scored
	for i, d := range departments {
		if s := keywordScore(desc, d); s > 0 {
			hits = append(hits, scored{d, s, i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	out := make([]department, 0, maxDepartments)
	for _, h := range hits {
		if len(out) == maxDepartments {
			break
		}
		out = append(out, h.d)
	}
	// pad with general departments so every store has a browsable floor
	for _, d := range departments {
		if len(out) >= maxDepartments {
			break
		}
		if !containsDepartment(out, d.name) {
			out = append(out, d)
		}
	}
	return out
}

func keywordScore(desc string, d department) float64 {
	if strings.Contains(desc, strings.ToLower(d.name)) {
		return 1
	}
	best := 0.0
	for _, kw := range d.keywords {
		if strings.Contains(desc, kw) {
			best = 0.8
		}
	}
	if best > 0 {
		return best
	}
	return textSimilarity(desc, strings.ToLower(d.name))
}

func buildLayout(name string, depts []department) *domain.RetailLayout {
	l := domain.NewRetailLayout(name)
	for i, d := range depts {
		l.Shelves = append(l.Shelves, &domain.ProductShelf{
			ID:            fmt.Sprintf("offline-shelf-%d", i+1),
			Name:          d.name,
			X:             150 + float64(i%3)*250,
			Y:             120 + float64(i/3)*160,
			Width:         160,
			Height:        50,
			Orientation:   float64((i / 3 % 2) * 180),
			Color:         d.color,
			AverageTicket: d.ticket,
		})
	}
	l.StructureObjects = []*domain.StructureObject{
		{ID: "offline-entrance", Name: "Main Entrance", Type: domain.StructureEntranceExit, X: 400, Y: 580, Width: 80, Height: 40},
		{ID: "offline-counter", Name: "Cash Counter 1", Type: domain.StructureCashCounter, X: 250, Y: 480, Width: 120, Height: 40},
	}
	l.Outline = []domain.Point{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 600}, {X: 0, Y: 600}}
	l.OverallScore = 70
	return l
}

func containsDepartment(ds []department, name string) bool {
	for _, d := range ds {
		if d.name == name {
			return true
		}
	}
	return false
}

// textSimilarity is a simple token overlap ratio in [0,1].
func textSimilarity(a, b string) float64 {
	aTokens := tokens(a)
	bTokens := tokens(b)
	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}
	intersect := 0
	for t := range aTokens {
		if _, ok := bTokens[t]; ok {
			intersect++
		}
	}
	union := len(aTokens) + len(bTokens) - intersect
	return float64(intersect) / float64(union)
}

func tokens(s string) map[string]struct{} {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' || r == '_' || r == '/' || r == ',' || r == '.' })
	out := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func properCap(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
