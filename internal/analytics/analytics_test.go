package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/floorplan/internal/domain"
)

func structure(id string, typ domain.StructureType, x, y float64) *domain.StructureObject {
	return &domain.StructureObject{ID: id, Name: id, Type: typ, X: x, Y: y, Width: 2, Height: 2}
}

func shelf(id string, x, y, ticket float64) *domain.ProductShelf {
	return &domain.ProductShelf{ID: id, Name: id, X: x, Y: y, Width: 10, Height: 10, AverageTicket: ticket}
}

func storeLayout() *domain.RetailLayout {
	l := domain.NewRetailLayout("scored")
	l.Outline = []domain.Point{{X: -10, Y: -10}, {X: 210, Y: -10}, {X: 210, Y: 210}, {X: -10, Y: 210}}
	l.StructureObjects = []*domain.StructureObject{
		structure("door", domain.StructureEntrance, 0, 0),
		structure("till", domain.StructureCashCounter, 200, 0),
	}
	l.Shelves = []*domain.ProductShelf{
		shelf("a", 0, 0, 100),
		shelf("b", 100, 0, 50),
		shelf("d", 100, 150, 100),
		shelf("f", 200, 100, 100),
	}
	return l
}

func TestAnalyzeExposureAndFlow(t *testing.T) {
	l := storeLayout()

	a := Analyze(l, l.ShelfByID("a"))
	require.Equal(t, "a", a.ShelfID)
	require.Equal(t, 100.0, a.Exposure)
	require.Equal(t, 100.0, a.FlowInterception)

	b := Analyze(l, l.ShelfByID("b"))
	require.Equal(t, 100.0, b.FlowInterception)
	require.Less(t, b.Exposure, a.Exposure)

	d := Analyze(l, l.ShelfByID("d"))
	require.Less(t, d.FlowInterception, b.FlowInterception)
	require.Less(t, d.Exposure, b.Exposure)
}

func TestAnalyzeImpulseWeightsTicket(t *testing.T) {
	l := storeLayout()
	b := Analyze(l, l.ShelfByID("b"))
	f := Analyze(l, l.ShelfByID("f"))
	require.Greater(t, f.Impulse, b.Impulse)
}

func TestAnalyzeCongestion(t *testing.T) {
	l := domain.NewRetailLayout("crowded")
	l.Shelves = []*domain.ProductShelf{
		shelf("x", 0, 0, 10),
		shelf("y", 50, 0, 10),
		shelf("z", 0, 50, 10),
		shelf("far", 400, 400, 10),
	}
	r := Analyze(l, l.ShelfByID("x"))
	require.Equal(t, 50.0, r.CongestionPenalty)
	require.Zero(t, Analyze(l, l.ShelfByID("far")).CongestionPenalty)
	require.Greater(t, r.CrossSell, Analyze(l, l.ShelfByID("far")).CrossSell)

	require.Zero(t, r.Exposure)
	require.Zero(t, r.Impulse)
	require.Zero(t, r.FlowInterception)
}

func TestAnalyzeIsDeterministicAndBounded(t *testing.T) {
	l := storeLayout()
	for _, s := range l.Shelves {
		first := Analyze(l, s)
		require.Equal(t, first, Analyze(l, s))
		for _, m := range first.Metrics() {
			require.GreaterOrEqual(t, m.Value, 0.0, m.Key)
			require.LessOrEqual(t, m.Value, 100.0, m.Key)
		}
	}
}

func TestAnalyzeNil(t *testing.T) {
	require.Equal(t, Report{}, Analyze(nil, nil))
	require.Equal(t, Report{}, Analyze(storeLayout(), nil))
}

func TestMetricsOrder(t *testing.T) {
	var keys []string
	for _, m := range (Report{}).Metrics() {
		keys = append(keys, m.Key)
	}
	require.Equal(t, []string{KeyExposure, KeyImpulse, KeyCrossSell, KeyFlowInterception, KeyCongestionPenalty}, keys)
}

func TestSuggestionsBalanced(t *testing.T) {
	require.Equal(t, []string{"Layout looks balanced."}, Suggestions(storeLayout()))
}

func TestSuggestions(t *testing.T) {
	l := domain.NewRetailLayout("busy")
	l.Outline = []domain.Point{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 200}, {X: 0, Y: 200}}
	l.StructureObjects = []*domain.StructureObject{structure("door", domain.StructureEntranceExit, 0, 0)}
	l.Shelves = []*domain.ProductShelf{
		shelf("Electronics", 190, 190, 350),
		shelf("Snacks", 20, 20, 5),
		shelf("Drinks", 60, 20, 5),
		shelf("Candy", 20, 60, 5),
		shelf("Lost", 250, 250, 1),
	}

	got := Suggestions(l)
	require.Contains(t, got, "Add a cash counter to capture impulse purchases.")
	require.Contains(t, got, "Move Electronics closer to main entrance to increase exposure.")
	require.Contains(t, got, "Give Snacks more room; 2 shelves crowd it.")
	require.Contains(t, got, "Lost sits outside the store outline.")
	require.NotContains(t, got, "Add an entrance so customer flow can be estimated.")

	require.Nil(t, Suggestions(domain.NewRetailLayout("empty")))
}

func TestOverallScore(t *testing.T) {
	require.Zero(t, OverallScore(domain.NewRetailLayout("empty")))
	score := OverallScore(storeLayout())
	require.Greater(t, score, 0.0)
	require.LessOrEqual(t, score, 100.0)
}
